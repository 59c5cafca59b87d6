package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = worktime.FixedClock(7)

func dayShift() shift.Shift {
	return shift.Shift{
		ID:               "shift-day",
		Name:             "Pagi",
		StartTime:        worktime.TimeOfDay{Hour: 8},
		EndTime:          worktime.TimeOfDay{Hour: 16},
		ToleranceMinutes: 15,
		IsActive:         true,
	}
}

func nightShift() shift.Shift {
	return shift.Shift{
		ID:               "shift-night",
		Name:             "Malam",
		StartTime:        worktime.TimeOfDay{Hour: 22},
		EndTime:          worktime.TimeOfDay{Hour: 6},
		ToleranceMinutes: 10,
		IsActive:         true,
	}
}

// local builds an instant on the organisation's wall clock.
func local(day time.Time, hour, minute, sec int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, jakarta.Location()).UTC()
}

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday

func TestCalculator_ClockIn_ScenarioA(t *testing.T) {
	calc := NewCalculator(jakarta)

	onTime := calc.ClockIn(dayShift(), testDay, local(testDay, 8, 10, 0))
	assert.Equal(t, attendance.ClockInOnTime, onTime.Status)
	assert.Equal(t, 0, onTime.LateMinutes)

	late := calc.ClockIn(dayShift(), testDay, local(testDay, 8, 20, 0))
	assert.Equal(t, attendance.ClockInLate, late.Status)
	assert.Equal(t, 20, late.LateMinutes, "lateness counts from the scheduled start")
}

func TestCalculator_ClockIn_ToleranceBoundary(t *testing.T) {
	calc := NewCalculator(jakarta)

	tests := []struct {
		name       string
		event      time.Time
		wantStatus attendance.ClockInStatus
		wantLate   int
	}{
		{"early arrival", local(testDay, 7, 30, 0), attendance.ClockInOnTime, 0},
		{"exactly at start", local(testDay, 8, 0, 0), attendance.ClockInOnTime, 0},
		{"exactly at tolerance", local(testDay, 8, 15, 0), attendance.ClockInOnTime, 0},
		{"one second past tolerance", local(testDay, 8, 15, 1), attendance.ClockInLate, 15},
		{"truncates seconds", local(testDay, 8, 47, 59), attendance.ClockInLate, 47},
		{"hours late", local(testDay, 11, 0, 0), attendance.ClockInLate, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.ClockIn(dayShift(), testDay, tt.event)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantLate, got.LateMinutes)
		})
	}
}

func TestCalculator_ClockIn_LateImpliesPositiveMinutes(t *testing.T) {
	calc := NewCalculator(jakarta)
	s := dayShift()

	for tolerance := 0; tolerance <= 60; tolerance += 5 {
		s.ToleranceMinutes = tolerance
		for offset := -30 * time.Minute; offset <= 3*time.Hour; offset += 17 * time.Second {
			event := local(testDay, 8, 0, 0).Add(offset)
			got := calc.ClockIn(s, testDay, event)

			graceLimit := local(testDay, 8, 0, 0).Add(time.Duration(tolerance) * time.Minute)
			if !event.After(graceLimit) {
				require.Equal(t, attendance.ClockInOnTime, got.Status, "tolerance=%d offset=%s", tolerance, offset)
				require.Zero(t, got.LateMinutes)
				continue
			}
			if got.Status == attendance.ClockInLate {
				require.Positive(t, got.LateMinutes)
				require.Equal(t, int(offset/time.Minute), got.LateMinutes)
			} else {
				require.Zero(t, got.LateMinutes)
			}
		}
	}
}

func TestCalculator_ClockIn_ZeroToleranceSubMinute(t *testing.T) {
	calc := NewCalculator(jakarta)
	s := dayShift()
	s.ToleranceMinutes = 0

	got := calc.ClockIn(s, testDay, local(testDay, 8, 0, 30))
	assert.Equal(t, attendance.ClockInOnTime, got.Status)
	assert.Equal(t, 0, got.LateMinutes)

	got = calc.ClockIn(s, testDay, local(testDay, 8, 1, 0))
	assert.Equal(t, attendance.ClockInLate, got.Status)
	assert.Equal(t, 1, got.LateMinutes)
}

func TestCalculator_ClockOut_ScenarioB(t *testing.T) {
	calc := NewCalculator(jakarta)

	got, err := calc.ClockOut(dayShift(), testDay, local(testDay, 8, 0, 0), local(testDay, 15, 45, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.ClockOutEarly, got.Status)
	assert.Equal(t, 15, got.EarlyMinutes)
	assert.Equal(t, 465, got.WorkMinutes)
}

func TestCalculator_ClockOut_Normal(t *testing.T) {
	calc := NewCalculator(jakarta)

	got, err := calc.ClockOut(dayShift(), testDay, local(testDay, 8, 0, 0), local(testDay, 16, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.ClockOutNormal, got.Status)
	assert.Equal(t, 0, got.EarlyMinutes)
	assert.Equal(t, 480, got.WorkMinutes)

	got, err = calc.ClockOut(dayShift(), testDay, local(testDay, 8, 0, 0), local(testDay, 18, 30, 59))
	require.NoError(t, err)
	assert.Equal(t, attendance.ClockOutNormal, got.Status)
	assert.Equal(t, 630, got.WorkMinutes)
}

func TestCalculator_ClockOut_WorkMinutesTruncate(t *testing.T) {
	calc := NewCalculator(jakarta)
	clockIn := local(testDay, 8, 0, 45)

	for _, d := range []time.Duration{time.Second, 59 * time.Second, time.Minute, 61 * time.Second, 7*time.Hour + 59*time.Minute + 59*time.Second} {
		got, err := calc.ClockOut(dayShift(), testDay, clockIn, clockIn.Add(d))
		require.NoError(t, err)
		assert.Equal(t, int(d/time.Minute), got.WorkMinutes, "duration %s", d)
		assert.GreaterOrEqual(t, got.WorkMinutes, 0)
	}
}

func TestCalculator_ClockOut_NotAfterClockIn(t *testing.T) {
	calc := NewCalculator(jakarta)
	clockIn := local(testDay, 8, 0, 0)

	_, err := calc.ClockOut(dayShift(), testDay, clockIn, clockIn)
	assert.ErrorIs(t, err, attendance.ErrClockOutNotAfterClockIn)

	_, err = calc.ClockOut(dayShift(), testDay, clockIn, clockIn.Add(-time.Minute))
	assert.ErrorIs(t, err, attendance.ErrClockOutNotAfterClockIn)
}

func TestCalculator_Overnight(t *testing.T) {
	calc := NewCalculator(jakarta)
	s := nightShift()
	next := testDay.AddDate(0, 0, 1)

	assert.True(t, s.IsOvernight())
	assert.Equal(t, local(next, 6, 0, 0), calc.ScheduledEnd(s, testDay))

	in := calc.ClockIn(s, testDay, local(testDay, 22, 5, 0))
	assert.Equal(t, attendance.ClockInOnTime, in.Status)

	t.Run("leaves after midnight before end", func(t *testing.T) {
		got, err := calc.ClockOut(s, testDay, local(testDay, 22, 5, 0), local(next, 5, 30, 0))
		require.NoError(t, err)
		assert.Equal(t, attendance.ClockOutEarly, got.Status)
		assert.Equal(t, 30, got.EarlyMinutes)
		assert.Equal(t, 445, got.WorkMinutes)
	})

	t.Run("leaves at scheduled end", func(t *testing.T) {
		got, err := calc.ClockOut(s, testDay, local(testDay, 22, 5, 0), local(next, 6, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, attendance.ClockOutNormal, got.Status)
		assert.Equal(t, 475, got.WorkMinutes)
	})

	t.Run("leaves before midnight", func(t *testing.T) {
		got, err := calc.ClockOut(s, testDay, local(testDay, 22, 5, 0), local(testDay, 23, 50, 0))
		require.NoError(t, err)
		assert.Equal(t, attendance.ClockOutEarly, got.Status)
		assert.Equal(t, 370, got.EarlyMinutes)
	})
}

func TestCalculator_UsesOrganisationZone(t *testing.T) {
	// 08:20 in UTC+7 is 01:20 UTC; a UTC calculator would see it as early.
	event := time.Date(2025, 6, 2, 1, 20, 0, 0, time.UTC)

	got := NewCalculator(jakarta).ClockIn(dayShift(), testDay, event)
	assert.Equal(t, attendance.ClockInLate, got.Status)
	assert.Equal(t, 20, got.LateMinutes)

	utc, err := worktime.NewClock("UTC")
	require.NoError(t, err)
	got = NewCalculator(utc).ClockIn(dayShift(), testDay, event)
	assert.Equal(t, attendance.ClockInOnTime, got.Status)
}
