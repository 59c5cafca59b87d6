package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
)

const autoCloseNote = "Auto-closed: no clock-out recorded, closed at the scheduled shift end"

// AutoCloseStale closes records from earlier days whose scheduled shift end
// passed more than grace ago. The clock-out is set to the scheduled end and
// no proof photo or location is attached. Today's records are never touched.
func (a *AttendanceServiceImpl) AutoCloseStale(ctx context.Context, grace time.Duration) (int, error) {
	now := a.now().UTC()

	open, err := a.AttendanceRepository.ListOpenBefore(ctx, a.clock.Date(now))
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendances: %w", err)
	}

	closed := 0
	for _, record := range open {
		s, err := a.shiftRepo.GetByID(ctx, record.ShiftID)
		if err != nil {
			slog.Error("auto-close: failed to get shift", "attendance_id", record.ID, "shift_id", record.ShiftID, "error", err)
			continue
		}

		end := a.calculator.ScheduledEnd(s, record.Date)
		if now.Sub(end) < grace {
			continue
		}

		result, err := a.calculator.ClockOut(s, record.Date, record.ClockIn, end)
		if err != nil {
			slog.Warn("auto-close: clock-in is after the scheduled end", "attendance_id", record.ID, "clock_in", record.ClockIn)
			continue
		}

		note := autoCloseNote
		record.ClockOut = &end
		record.ClockOutStatus = &result.Status
		record.EarlyMinutes = result.EarlyMinutes
		record.WorkMinutes = result.WorkMinutes
		record.Notes = &note

		if _, err := a.AttendanceRepository.CloseOpen(ctx, record); err != nil {
			if errors.Is(err, attendance.ErrNoOpenClockIn) {
				continue
			}
			return closed, fmt.Errorf("failed to auto-close attendance %s: %w", record.ID, err)
		}

		slog.Info("attendance auto-closed",
			"attendance_id", record.ID,
			"user_id", record.UserID,
			"date", record.Date.Format("2006-01-02"),
			"work_minutes", result.WorkMinutes,
		)
		closed++
	}

	return closed, nil
}
