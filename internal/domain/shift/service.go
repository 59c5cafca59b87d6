package shift

import (
	"context"
	"time"
)

// ShiftService manages shift definitions and weekly schedules (admin).
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	// GetUserSchedule returns the user's seven-day schedule
	GetUserSchedule(ctx context.Context, userID string) (UserScheduleResponse, error)

	// SetSchedule assigns one day, replacing any existing assignment
	SetSchedule(ctx context.Context, req SetScheduleRequest) (ScheduleResponse, error)

	// BulkSetSchedule assigns or clears several days in one transaction
	BulkSetSchedule(ctx context.Context, req BulkSetScheduleRequest) (UserScheduleResponse, error)

	DeleteSchedule(ctx context.Context, id string) error
}

// Resolver finds the shift that applies to a user at an instant.
type Resolver interface {
	// ResolveShift returns a *NotScheduledError when the user has no shift
	// for the organisation-local day of at
	ResolveShift(ctx context.Context, userID string, at time.Time) (Shift, error)
}
