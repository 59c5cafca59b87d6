package shift

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

const (
	DefaultToleranceMinutes = 15
	MaxToleranceMinutes     = 60
)

// Shift is a named wall-clock work window. Start and end carry no date; an
// end earlier than the start means the shift runs past midnight.
type Shift struct {
	ID               string
	Name             string
	CategoryID       string
	StartTime        worktime.TimeOfDay
	EndTime          worktime.TimeOfDay
	ToleranceMinutes int
	Description      *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsOvernight reports whether the shift ends on the following calendar day.
func (s Shift) IsOvernight() bool {
	return s.EndTime.Before(s.StartTime)
}

// Assignment binds a user to one shift for a day of week (0=Sunday).
type Assignment struct {
	ID        string
	UserID    string
	DayOfWeek int
	ShiftID   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	Shift *Shift
}
