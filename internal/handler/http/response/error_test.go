package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func handle(t *testing.T, err error) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return rec.Code, body
}

func TestHandleError_Codes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "latitude", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"out of range", &attendance.OutOfRangeError{DistanceMeters: 512, RadiusMeters: 300}, http.StatusForbidden, "OUT_OF_RANGE"},
		{"already clocked in", &attendance.AlreadyClockedInError{ClockIn: time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)}, http.StatusConflict, "ALREADY_CLOCKED_IN"},
		{"no open clock-in", attendance.ErrNoOpenClockIn, http.StatusNotFound, "NO_OPEN_CLOCK_IN"},
		{"not scheduled", fmt.Errorf("resolve: %w", &shift.NotScheduledError{Day: "Senin"}), http.StatusNotFound, "NOT_SCHEDULED"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"shift in use", shift.ErrShiftInUse, http.StatusConflict, "CONFLICT"},
		{"attendance not found", attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unexpected", fmt.Errorf("failed to query: %w", assert.AnError), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handle(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_Details(t *testing.T) {
	_, body := handle(t, &attendance.OutOfRangeError{DistanceMeters: 512, RadiusMeters: 300})
	assert.EqualValues(t, 512, body.Error.Details["distance_meters"])
	assert.EqualValues(t, 300, body.Error.Details["radius_meters"])

	_, body = handle(t, &shift.NotScheduledError{Day: "Minggu"})
	assert.Equal(t, "Minggu", body.Error.Details["day"])
	assert.Equal(t, "no shift scheduled for Minggu", body.Error.Message)

	_, body = handle(t, &attendance.AlreadyClockedInError{ClockIn: time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)})
	assert.Equal(t, "2025-06-02T01:00:00Z", body.Error.Details["clock_in"])

	_, body = handle(t, validator.ValidationErrors{{Field: "photo", Message: "attendance proof photo is required"}})
	assert.Equal(t, "attendance proof photo is required", body.Error.Details["photo"])
}
