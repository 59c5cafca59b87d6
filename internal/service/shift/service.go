package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

type ShiftServiceImpl struct {
	tx database.TxManager
	shift.ShiftRepository
	assignments      shift.AssignmentRepository
	users            user.UserRepository
	defaultTolerance int
}

func NewShiftService(
	tx database.TxManager,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	userRepo user.UserRepository,
	defaultTolerance int,
) shift.ShiftService {
	return &ShiftServiceImpl{
		tx:               tx,
		ShiftRepository:  shiftRepo,
		assignments:      assignmentRepo,
		users:            userRepo,
		defaultTolerance: defaultTolerance,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	start, _ := worktime.ParseTimeOfDay(req.StartTime)
	end, _ := worktime.ParseTimeOfDay(req.EndTime)

	newShift := shift.Shift{
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		StartTime:        start,
		EndTime:          end,
		ToleranceMinutes: s.defaultTolerance,
		Description:      req.Description,
		IsActive:         true,
	}
	if req.ToleranceMinutes != nil {
		newShift.ToleranceMinutes = *req.ToleranceMinutes
	}
	if req.IsActive != nil {
		newShift.IsActive = *req.IsActive
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	slog.Info("shift created", "shift_id", created.ID, "name", created.Name, "overnight", created.IsOvernight())

	return toShiftResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return toShiftResponse(found), nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.CategoryID != nil {
		existing.CategoryID = *req.CategoryID
	}
	if req.StartTime != nil {
		existing.StartTime, _ = worktime.ParseTimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		existing.EndTime, _ = worktime.ParseTimeOfDay(*req.EndTime)
	}
	if req.ToleranceMinutes != nil {
		existing.ToleranceMinutes = *req.ToleranceMinutes
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if existing.StartTime == existing.EndTime {
		return shift.ShiftResponse{}, validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time must differ from start_time",
		}}
	}

	updated, err := s.ShiftRepository.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return toShiftResponse(updated), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if err := s.ShiftRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) || errors.Is(err, shift.ErrShiftInUse) {
			return err
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	slog.Info("shift deleted", "shift_id", id)
	return nil
}

// GetUserSchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) GetUserSchedule(ctx context.Context, userID string) (shift.UserScheduleResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return shift.UserScheduleResponse{}, err
	}

	assignments, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return shift.UserScheduleResponse{}, fmt.Errorf("failed to list shift schedules: %w", err)
	}

	byDay := make(map[int]shift.Assignment, len(assignments))
	for _, a := range assignments {
		byDay[a.DayOfWeek] = a
	}

	resp := shift.UserScheduleResponse{
		UserID:   u.ID,
		UserName: u.Name,
		Days:     make([]shift.DayScheduleResponse, 0, 7),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := shift.DayScheduleResponse{DayOfWeek: int(d), DayName: worktime.DayName(d)}
		if a, ok := byDay[int(d)]; ok {
			sched := toScheduleResponse(a)
			day.Schedule = &sched
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

// SetSchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) SetSchedule(ctx context.Context, req shift.SetScheduleRequest) (shift.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ScheduleResponse{}, err
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return shift.ScheduleResponse{}, err
	}

	saved, err := s.assign(ctx, u, *req.DayOfWeek, req.ShiftID)
	if err != nil {
		return shift.ScheduleResponse{}, err
	}

	return toScheduleResponse(saved), nil
}

// BulkSetSchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) BulkSetSchedule(ctx context.Context, req shift.BulkSetScheduleRequest) (shift.UserScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.UserScheduleResponse{}, err
	}

	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.GetByID(txCtx, req.UserID)
		if err != nil {
			return err
		}

		for _, item := range req.Schedules {
			if item.ShiftID == nil {
				if err := s.assignments.DeleteByUserAndDay(txCtx, req.UserID, *item.DayOfWeek); err != nil {
					return fmt.Errorf("failed to clear %s: %w", worktime.DayName(time.Weekday(*item.DayOfWeek)), err)
				}
				continue
			}
			if _, err := s.assign(txCtx, u, *item.DayOfWeek, *item.ShiftID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shift.UserScheduleResponse{}, err
	}

	slog.Info("shift schedule updated", "user_id", req.UserID, "days", len(req.Schedules))

	return s.GetUserSchedule(ctx, req.UserID)
}

// assign upserts one day after checking the shift belongs to the user's category.
func (s *ShiftServiceImpl) assign(ctx context.Context, u user.User, dayOfWeek int, shiftID string) (shift.Assignment, error) {
	target, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.Assignment{}, err
	}
	if !target.IsActive {
		return shift.Assignment{}, shift.ErrShiftInactive
	}
	if u.CategoryID == nil {
		return shift.Assignment{}, user.ErrUserHasNoCategory
	}
	if *u.CategoryID != target.CategoryID {
		return shift.Assignment{}, shift.ErrCategoryMismatch
	}

	saved, err := s.assignments.Upsert(ctx, shift.Assignment{
		UserID:    u.ID,
		DayOfWeek: dayOfWeek,
		ShiftID:   target.ID,
		IsActive:  true,
	})
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to save shift schedule: %w", err)
	}
	saved.Shift = &target

	return saved, nil
}

// DeleteSchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, shift.ErrAssignmentNotFound) {
			return shift.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	return nil
}

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:               s.ID,
		Name:             s.Name,
		CategoryID:       s.CategoryID,
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		ToleranceMinutes: s.ToleranceMinutes,
		IsOvernight:      s.IsOvernight(),
		Description:      s.Description,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toScheduleResponse(a shift.Assignment) shift.ScheduleResponse {
	resp := shift.ScheduleResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		DayOfWeek: a.DayOfWeek,
		DayName:   worktime.DayName(time.Weekday(a.DayOfWeek)),
		ShiftID:   a.ShiftID,
		IsActive:  a.IsActive,
	}
	if a.Shift != nil {
		sr := toShiftResponse(*a.Shift)
		resp.Shift = &sr
	}
	return resp
}
