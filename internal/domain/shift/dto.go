package shift

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	Name             string  `json:"name"`
	CategoryID       string  `json:"category_id"`
	StartTime        string  `json:"start_time"` // HH:MM
	EndTime          string  `json:"end_time"`   // HH:MM
	ToleranceMinutes *int    `json:"tolerance_minutes,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.CategoryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id is required",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.StartTime != "" && r.StartTime == r.EndTime {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must differ from start_time",
		})
	}

	if r.ToleranceMinutes != nil {
		errs = append(errs, validateTolerance(*r.ToleranceMinutes)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name,omitempty"`
	CategoryID       *string `json:"category_id,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	EndTime          *string `json:"end_time,omitempty"`
	ToleranceMinutes *int    `json:"tolerance_minutes,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.CategoryID != nil && validator.IsEmpty(*r.CategoryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "category_id",
			Message: "category_id must not be empty",
		})
	}

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.ToleranceMinutes != nil {
		errs = append(errs, validateTolerance(*r.ToleranceMinutes)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateTolerance(minutes int) validator.ValidationErrors {
	if minutes < 0 || minutes > MaxToleranceMinutes {
		return validator.ValidationErrors{{
			Field:   "tolerance_minutes",
			Message: fmt.Sprintf("tolerance_minutes must be between 0 and %d", MaxToleranceMinutes),
		}}
	}
	return nil
}

type ShiftResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	CategoryID       string  `json:"category_id"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	ToleranceMinutes int     `json:"tolerance_minutes"`
	IsOvernight      bool    `json:"is_overnight"`
	Description      *string `json:"description,omitempty"`
	IsActive         bool    `json:"is_active"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// ========================================
// SCHEDULE DTOs
// ========================================

type SetScheduleRequest struct {
	UserID    string `json:"user_id"`
	DayOfWeek *int   `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	ShiftID   string `json:"shift_id"`
}

func (r *SetScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.DayOfWeek == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week is required",
		})
	} else if !validDay(*r.DayOfWeek) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkScheduleItem with a nil ShiftID removes that day's assignment.
type BulkScheduleItem struct {
	DayOfWeek *int    `json:"day_of_week"`
	ShiftID   *string `json:"shift_id"`
}

type BulkSetScheduleRequest struct {
	UserID    string             `json:"user_id"`
	Schedules []BulkScheduleItem `json:"schedules"`
}

func (r *BulkSetScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(r.Schedules) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "schedules",
			Message: "schedules must contain at least one day",
		})
	}

	seen := make(map[int]bool, len(r.Schedules))
	for i, item := range r.Schedules {
		field := fmt.Sprintf("schedules[%d].day_of_week", i)
		switch {
		case item.DayOfWeek == nil:
			errs = append(errs, validator.ValidationError{Field: field, Message: "day_of_week is required"})
		case !validDay(*item.DayOfWeek):
			errs = append(errs, validator.ValidationError{Field: field, Message: "day_of_week must be between 0 and 6"})
		case seen[*item.DayOfWeek]:
			errs = append(errs, validator.ValidationError{Field: field, Message: "day_of_week is duplicated"})
		default:
			seen[*item.DayOfWeek] = true
		}

		if item.ShiftID != nil && validator.IsEmpty(*item.ShiftID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("schedules[%d].shift_id", i),
				Message: "shift_id must be null or a shift id",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validDay(d int) bool {
	return d >= 0 && d <= 6
}

type ScheduleResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	DayOfWeek int            `json:"day_of_week"`
	DayName   string         `json:"day_name"`
	ShiftID   string         `json:"shift_id"`
	Shift     *ShiftResponse `json:"shift,omitempty"`
	IsActive  bool           `json:"is_active"`
}

type DayScheduleResponse struct {
	DayOfWeek int               `json:"day_of_week"`
	DayName   string            `json:"day_name"`
	Schedule  *ScheduleResponse `json:"schedule"`
}

// UserScheduleResponse always lists all seven days, Sunday first.
type UserScheduleResponse struct {
	UserID   string                `json:"user_id"`
	UserName string                `json:"user_name"`
	Days     []DayScheduleResponse `json:"days"`
}
