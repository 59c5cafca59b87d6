package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
)

type SettingsHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	TestLocation(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// GetSettings implements SettingsHandler.
func (h *settingsHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSettings implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update settings request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", result)
}

// TestLocation implements SettingsHandler.
func (h *settingsHandlerImpl) TestLocation(w http.ResponseWriter, r *http.Request) {
	var req settings.TestLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode test location request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.TestLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
