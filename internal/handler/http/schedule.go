package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// ScheduleHandler serves the weekly shift schedule of each user.
type ScheduleHandler interface {
	GetUserSchedule(w http.ResponseWriter, r *http.Request)
	SetSchedule(w http.ResponseWriter, r *http.Request)
	BulkSetSchedule(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewScheduleHandler(shiftService shift.ShiftService) ScheduleHandler {
	return &scheduleHandlerImpl{
		shiftService: shiftService,
	}
}

// GetUserSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetUserSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.GetUserSchedule(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req shift.SetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode set schedule request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.SetSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift schedule saved", result)
}

// BulkSetSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) BulkSetSchedule(w http.ResponseWriter, r *http.Request) {
	var req shift.BulkSetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk schedule request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.BulkSetSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift schedule saved", result)
}

// DeleteSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift schedule deleted", nil)
}
