package cron

import (
	"context"
	"log/slog"
	"time"
)

// StaleCloser closes attendance records left open past their shift.
type StaleCloser interface {
	AutoCloseStale(ctx context.Context, grace time.Duration) (int, error)
}

type AttendanceJobs struct {
	closer StaleCloser
	grace  time.Duration
}

func NewAttendanceJobs(closer StaleCloser, grace time.Duration) *AttendanceJobs {
	return &AttendanceJobs{closer: closer, grace: grace}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_close_stale_attendances", interval, j.AutoCloseStaleAttendances)
}

func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	closed, err := j.closer.AutoCloseStale(ctx, j.grace)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("cron: auto-closed stale attendances", "count", closed)
	}
	return nil
}
