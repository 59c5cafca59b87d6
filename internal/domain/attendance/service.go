package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens today's record for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (ClockResponse, error)

	// ClockOut closes the employee's open record
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockResponse, error)

	// GetToday returns the employee's record for the current local date, if any
	GetToday(ctx context.Context, userID string) (TodayResponse, error)

	// GetHistory returns the employee's records, newest first, with a summary
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// CreateManualEntry writes a record on behalf of an employee (admin)
	CreateManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// UpdateManualEntry edits a record and recomputes its status (admin)
	UpdateManualEntry(ctx context.Context, req ManualUpdateRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID (admin)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// DeleteAttendance removes a record (admin)
	DeleteAttendance(ctx context.Context, id string) error
}
