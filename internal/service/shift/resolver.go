package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

// Resolver finds a user's shift from their weekly schedule. With the legacy
// fallback enabled, unscheduled days fall back to the category shift whose
// start hour is nearest the current hour.
type Resolver struct {
	assignments    shift.AssignmentRepository
	shifts         shift.ShiftRepository
	users          user.UserRepository
	clock          *worktime.Clock
	legacyFallback bool
}

func NewResolver(
	assignments shift.AssignmentRepository,
	shifts shift.ShiftRepository,
	users user.UserRepository,
	clock *worktime.Clock,
	legacyFallback bool,
) *Resolver {
	return &Resolver{
		assignments:    assignments,
		shifts:         shifts,
		users:          users,
		clock:          clock,
		legacyFallback: legacyFallback,
	}
}

// ResolveShift implements shift.Resolver.
func (r *Resolver) ResolveShift(ctx context.Context, userID string, at time.Time) (shift.Shift, error) {
	weekday := r.clock.Weekday(at)

	assignment, err := r.assignments.GetActiveByUserAndDay(ctx, userID, int(weekday))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	if assignment != nil {
		s, err := r.assignedShift(ctx, *assignment)
		if err != nil {
			return shift.Shift{}, err
		}
		if s.IsActive {
			return s, nil
		}
		slog.Warn("scheduled shift is inactive", "user_id", userID, "shift_id", s.ID, "day_of_week", int(weekday))
	}

	if r.legacyFallback {
		s, found, err := r.nearestCategoryShift(ctx, userID, at)
		if err != nil {
			return shift.Shift{}, err
		}
		if found {
			slog.Debug("shift resolved by legacy fallback", "user_id", userID, "shift_id", s.ID)
			return s, nil
		}
	}

	return shift.Shift{}, &shift.NotScheduledError{Day: worktime.DayName(weekday)}
}

func (r *Resolver) assignedShift(ctx context.Context, a shift.Assignment) (shift.Shift, error) {
	if a.Shift != nil {
		return *a.Shift, nil
	}
	s, err := r.shifts.GetByID(ctx, a.ShiftID)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to get scheduled shift: %w", err)
	}
	return s, nil
}

// nearestCategoryShift picks the active shift of the user's category with the
// smallest start-hour distance from the local hour of at. Ties keep the first
// shift in start-time order.
func (r *Resolver) nearestCategoryShift(ctx context.Context, userID string, at time.Time) (shift.Shift, bool, error) {
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return shift.Shift{}, false, nil
		}
		return shift.Shift{}, false, fmt.Errorf("failed to get user: %w", err)
	}
	if u.CategoryID == nil {
		return shift.Shift{}, false, nil
	}

	candidates, err := r.shifts.ListActiveByCategory(ctx, *u.CategoryID)
	if err != nil {
		return shift.Shift{}, false, fmt.Errorf("failed to list category shifts: %w", err)
	}
	if len(candidates) == 0 {
		return shift.Shift{}, false, nil
	}

	hour := r.clock.Local(at).Hour()
	best := candidates[0]
	bestDiff := absInt(best.StartTime.Hour - hour)
	for _, s := range candidates[1:] {
		if diff := absInt(s.StartTime.Hour - hour); diff < bestDiff {
			best, bestDiff = s, diff
		}
	}

	return best, true, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
