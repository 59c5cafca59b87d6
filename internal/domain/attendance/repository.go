package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Uniqueness of (user, date) is enforced by the store.
type AttendanceRepository interface {
	// Create returns ErrAttendanceExists when a record for (user, date) already exists
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when missing
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns nil, nil when there is no record
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// CloseOpen writes the clock-out fields only while clock_out is still unset.
	// Notes is kept when the record's Notes is nil.
	// Returns ErrNoOpenClockIn when no open record matched.
	CloseOpen(ctx context.Context, a Attendance) (Attendance, error)

	// Update overwrites a record (manual edits)
	Update(ctx context.Context, a Attendance) (Attendance, error)

	Delete(ctx context.Context, id string) error

	// ListByUser is ordered newest date first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Attendance, int64, error)

	SummarizeByUser(ctx context.Context, userID string) (Summary, error)

	// ListOpenBefore returns records without a clock-out dated strictly before date
	ListOpenBefore(ctx context.Context, date time.Time) ([]Attendance, error)
}
