package shift

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
)

type fakeShiftRepo struct {
	mu     sync.Mutex
	seq    int
	shifts map[string]shift.Shift
	inUse  map[string]bool
}

func newFakeShiftRepo(shifts ...shift.Shift) *fakeShiftRepo {
	r := &fakeShiftRepo{shifts: map[string]shift.Shift{}, inUse: map[string]bool{}}
	for _, s := range shifts {
		r.shifts[s.ID] = s
	}
	return r
}

func (r *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.ID = fmt.Sprintf("shift-%d", r.seq)
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[s.ID]; !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	if r.inUse[id] {
		return shift.ErrShiftInUse
	}
	delete(r.shifts, id)
	return nil
}

func (r *fakeShiftRepo) ListActiveByCategory(ctx context.Context, categoryID string) ([]shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.CategoryID == categoryID && s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type fakeAssignmentRepo struct {
	mu     sync.Mutex
	seq    int
	shifts *fakeShiftRepo
	rows   map[string]shift.Assignment // keyed by user|day
}

func newFakeAssignmentRepo(shifts *fakeShiftRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{shifts: shifts, rows: map[string]shift.Assignment{}}
}

func assignmentKey(userID string, day int) string {
	return fmt.Sprintf("%s|%d", userID, day)
}

func (r *fakeAssignmentRepo) Upsert(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := assignmentKey(a.UserID, a.DayOfWeek)
	if existing, ok := r.rows[key]; ok {
		a.ID = existing.ID
	} else {
		r.seq++
		a.ID = fmt.Sprintf("sched-%d", r.seq)
	}
	r.rows[key] = a
	return a, nil
}

func (r *fakeAssignmentRepo) GetActiveByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*shift.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[assignmentKey(userID, dayOfWeek)]
	if !ok || !a.IsActive {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAssignmentRepo) ListByUser(ctx context.Context, userID string) ([]shift.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shift.Assignment
	for _, a := range r.rows {
		if a.UserID != userID {
			continue
		}
		if s, ok := r.shifts.shifts[a.ShiftID]; ok {
			a.Shift = &s
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *fakeAssignmentRepo) DeleteByUserAndDay(ctx context.Context, userID string, dayOfWeek int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, assignmentKey(userID, dayOfWeek))
	return nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, a := range r.rows {
		if a.ID == id {
			delete(r.rows, key)
			return nil
		}
	}
	return shift.ErrAssignmentNotFound
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// recordingTx runs fn directly and counts how often a transaction was requested.
type recordingTx struct {
	calls int
}

func (t *recordingTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
