package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)

	// Admin
	ManualEntry(w http.ResponseWriter, r *http.Request)
	ManualUpdate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// clockForm is the multipart body shared by clock-in and clock-out.
type clockForm struct {
	latitude   float64
	longitude  float64
	file       multipart.File
	fileHeader *multipart.FileHeader
}

// parseClockForm reads latitude, longitude and photo. Unparseable
// coordinates and a missing photo are reported as validation errors.
func parseClockForm(r *http.Request) (clockForm, error) {
	var form clockForm

	if err := r.ParseMultipartForm(attendance.MaxPhotoSize); err != nil {
		return form, err
	}

	var errs validator.ValidationErrors

	lat, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("latitude")), 64)
	if err != nil {
		errs.Add("latitude", "latitude must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("longitude")), 64)
	if err != nil {
		errs.Add("longitude", "longitude must be a number between -180 and 180")
	}
	form.latitude, form.longitude = lat, lon

	file, fileHeader, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		errs.Add("photo", "attendance proof photo is required")
	case err != nil:
		return form, err
	default:
		form.file, form.fileHeader = file, fileHeader
	}

	if err := errs.Err(); err != nil {
		if form.file != nil {
			form.file.Close()
		}
		return form, err
	}

	return form, nil
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	form, err := parseClockForm(r)
	if err != nil {
		h.formError(w, err)
		return
	}
	defer form.file.Close()

	result, err := h.attendanceService.ClockIn(r.Context(), attendance.ClockInRequest{
		UserID:     middleware.UserID(r.Context()),
		Latitude:   form.latitude,
		Longitude:  form.longitude,
		File:       form.file,
		FileHeader: form.fileHeader,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	form, err := parseClockForm(r)
	if err != nil {
		h.formError(w, err)
		return
	}
	defer form.file.Close()

	result, err := h.attendanceService.ClockOut(r.Context(), attendance.ClockOutRequest{
		UserID:     middleware.UserID(r.Context()),
		Latitude:   form.latitude,
		Longitude:  form.longitude,
		File:       form.file,
		FileHeader: form.fileHeader,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

func (h *attendanceHandlerImpl) formError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.HandleError(w, err)
		return
	}
	slog.Error("Failed to parse multipart form", "error", err)
	response.BadRequest(w, "Failed to parse form data", nil)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetToday(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{UserID: middleware.UserID(r.Context())}
	query := r.URL.Query()

	var errs validator.ValidationErrors
	if page := query.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			errs.Add("page", "page must be a positive number")
		}
		filter.Page = n
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			errs.Add("limit", "limit must be a positive number")
		}
		filter.Limit = n
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual entry request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AdminID = middleware.UserID(r.Context())

	result, err := h.attendanceService.CreateManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual attendance entry created", result)
}

// ManualUpdate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualUpdate(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual update request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.AdminID = middleware.UserID(r.Context())

	result, err := h.attendanceService.UpdateManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}
