package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceService_AutoCloseStale(t *testing.T) {
	env := newTestEnv(t)
	env.now = local(testDay, 8, 0, 0)
	opened, err := env.svc.ClockIn(context.Background(), clockInAt(10))
	require.NoError(t, err)

	// Still today: never closed, even long after the shift ended.
	env.now = local(testDay, 23, 0, 0)
	n, err := env.svc.AutoCloseStale(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	env.now = local(testDay.AddDate(0, 0, 1), 1, 0, 0)
	n, err = env.svc.AutoCloseStale(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	record, err := env.repo.GetByID(context.Background(), opened.Attendance.ID)
	require.NoError(t, err)
	require.NotNil(t, record.ClockOut)
	assert.Equal(t, local(testDay, 16, 0, 0), *record.ClockOut)
	assert.Equal(t, attendance.ClockOutNormal, *record.ClockOutStatus)
	assert.Equal(t, 480, record.WorkMinutes)
	require.NotNil(t, record.Notes)
	assert.Contains(t, *record.Notes, "Auto-closed")

	n, err = env.svc.AutoCloseStale(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n, "already closed")
}

func TestAttendanceService_AutoCloseStale_OvernightGrace(t *testing.T) {
	env := newTestEnv(t)
	env.resolver.shifts[employee] = nightShift()
	next := testDay.AddDate(0, 0, 1)

	env.now = local(testDay, 21, 58, 0)
	_, err := env.svc.ClockIn(context.Background(), clockInAt(10))
	require.NoError(t, err)

	// One hour past the 06:00 end: the employee can still clock out.
	env.now = local(next, 7, 0, 0)
	n, err := env.svc.AutoCloseStale(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	env.now = local(next, 8, 30, 0)
	n, err = env.svc.AutoCloseStale(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = env.svc.ClockOut(context.Background(), clockOutAt(10))
	assert.ErrorIs(t, err, attendance.ErrNoOpenClockIn)
}
