package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

// Calculator derives clock-in and clock-out status from a shift's wall-clock
// window. It is pure: all inputs are passed in, including the record date.
type Calculator struct {
	clock *worktime.Clock
}

func NewCalculator(clock *worktime.Clock) *Calculator {
	return &Calculator{clock: clock}
}

type ClockInResult struct {
	ScheduledStart time.Time
	Status         attendance.ClockInStatus
	LateMinutes    int
}

type ClockOutResult struct {
	ScheduledEnd time.Time
	Status       attendance.ClockOutStatus
	EarlyMinutes int
	WorkMinutes  int
}

// ClockIn measures lateness from the scheduled start on day, not from the end
// of the tolerance window.
func (c *Calculator) ClockIn(s shift.Shift, day, event time.Time) ClockInResult {
	start := c.ScheduledStart(s, day)
	graceLimit := start.Add(time.Duration(s.ToleranceMinutes) * time.Minute)

	result := ClockInResult{ScheduledStart: start, Status: attendance.ClockInOnTime}

	if event.After(graceLimit) {
		// Less than a whole minute past a zero tolerance is still on time.
		if late := wholeMinutes(event.Sub(start)); late > 0 {
			result.Status = attendance.ClockInLate
			result.LateMinutes = late
		}
	}

	return result
}

// ClockOut compares event with the scheduled end of the shift that started on
// day. Overnight shifts end on the following calendar day.
func (c *Calculator) ClockOut(s shift.Shift, day, clockIn, event time.Time) (ClockOutResult, error) {
	if !event.After(clockIn) {
		return ClockOutResult{}, attendance.ErrClockOutNotAfterClockIn
	}

	end := c.ScheduledEnd(s, day)
	result := ClockOutResult{
		ScheduledEnd: end,
		Status:       attendance.ClockOutNormal,
		WorkMinutes:  wholeMinutes(event.Sub(clockIn)),
	}

	if event.Before(end) {
		if early := wholeMinutes(end.Sub(event)); early > 0 {
			result.Status = attendance.ClockOutEarly
			result.EarlyMinutes = early
		}
	}

	return result, nil
}

// ScheduledStart is the UTC instant the shift starts on day.
func (c *Calculator) ScheduledStart(s shift.Shift, day time.Time) time.Time {
	return c.clock.At(day, s.StartTime)
}

// ScheduledEnd is the UTC instant the shift that started on day ends.
func (c *Calculator) ScheduledEnd(s shift.Shift, day time.Time) time.Time {
	if s.IsOvernight() {
		return c.clock.At(day.AddDate(0, 0, 1), s.EndTime)
	}
	return c.clock.At(day, s.EndTime)
}

// wholeMinutes truncates d to minutes; negative durations count as zero.
func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
