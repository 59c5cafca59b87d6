package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	CreateShift(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// CreateShift implements ShiftHandler.
func (h *shiftHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create shift request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// GetShift implements ShiftHandler.
func (h *shiftHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateShift implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update shift request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// DeleteShift implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}
