package attendance

import (
	"time"
)

type ClockInStatus string

const (
	ClockInOnTime ClockInStatus = "ontime"
	ClockInLate   ClockInStatus = "late"
)

type ClockOutStatus string

const (
	ClockOutNormal ClockOutStatus = "normal"
	ClockOutEarly  ClockOutStatus = "early"
)

// Attendance is one employee's record for one organisation-local date.
// Date is stored as midnight UTC of that local date; all instants are UTC.
type Attendance struct {
	ID                string
	UserID            string
	ShiftID           string
	Date              time.Time
	ClockIn           time.Time
	ClockOut          *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	PhotoURL          *string
	PhotoOutURL       *string
	ClockInStatus     ClockInStatus
	ClockOutStatus    *ClockOutStatus
	LateMinutes       int
	EarlyMinutes      int
	WorkMinutes       int
	IsManualEntry     bool
	ManualEntryBy     *string
	ManualEntryNote   *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	UserName  *string
	ShiftName *string
}

// IsOpen reports whether the record is still waiting for a clock-out.
func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// Summary aggregates a user's attendance history.
type Summary struct {
	Total            int64
	LateCount        int64
	EarlyCount       int64
	TotalWorkMinutes int64
}
