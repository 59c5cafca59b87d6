package response

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Errors that carry details
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		Fail(w, http.StatusForbidden, "OUT_OF_RANGE", outOfRange.Error(), map[string]int{
			"distance_meters": outOfRange.DistanceMeters,
			"radius_meters":   outOfRange.RadiusMeters,
		})
		return
	}

	var alreadyIn *attendance.AlreadyClockedInError
	if errors.As(err, &alreadyIn) {
		Fail(w, http.StatusConflict, "ALREADY_CLOCKED_IN", attendance.ErrAlreadyClockedIn.Error(), map[string]string{
			"clock_in": alreadyIn.ClockIn.UTC().Format(time.RFC3339),
		})
		return
	}

	var notScheduled *shift.NotScheduledError
	if errors.As(err, &notScheduled) {
		Fail(w, http.StatusNotFound, "NOT_SCHEDULED", notScheduled.Error(), map[string]string{
			"day": notScheduled.Day,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserHasNoCategory):
		Conflict(w, "User has no category assigned")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Fail(w, http.StatusForbidden, "OUT_OF_RANGE", err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Fail(w, http.StatusConflict, "ALREADY_CLOCKED_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrNoOpenClockIn):
		Fail(w, http.StatusNotFound, "NO_OPEN_CLOCK_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrClockOutNotAfterClockIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance record already exists for this date")

	// Shift domain errors
	case errors.Is(err, shift.ErrNotScheduled):
		Fail(w, http.StatusNotFound, "NOT_SCHEDULED", err.Error(), nil)
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift schedule not found")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is referenced by attendance records")
	case errors.Is(err, shift.ErrShiftInactive):
		Conflict(w, "Shift is inactive")
	case errors.Is(err, shift.ErrCategoryMismatch):
		Conflict(w, "Shift category does not match the user's category")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotProvisioned):
		Fail(w, http.StatusServiceUnavailable, "SETTINGS_NOT_PROVISIONED", err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
