package attendance

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

// MaxPhotoSize is the largest accepted proof photo upload.
const MaxPhotoSize = 10 << 20

// ========================================
// CLOCK EVENT DTOs
// ========================================

type ClockInRequest struct {
	UserID     string                `json:"-"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	return validateClockEvent(r.UserID, r.Latitude, r.Longitude, r.FileHeader)
}

type ClockOutRequest struct {
	UserID     string                `json:"-"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	return validateClockEvent(r.UserID, r.Latitude, r.Longitude, r.FileHeader)
}

func validateClockEvent(userID string, lat, lon float64, fh *multipart.FileHeader) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(userID) {
		errs.Add("user_id", "user_id is required")
	}

	if !geo.ValidLatitude(lat) {
		errs.Add("latitude", "latitude must be a number between -90 and 90")
	}

	if !geo.ValidLongitude(lon) {
		errs.Add("longitude", "longitude must be a number between -180 and 180")
	}

	if fh == nil {
		errs.Add("photo", "attendance proof photo is required")
	} else {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs.Add("photo", "invalid file type: only jpg, jpeg, png allowed")
		} else if fh.Size > MaxPhotoSize {
			errs.Add("photo", "attendance proof photo size must not exceed 10MB")
		}
	}

	return errs.Err()
}

type ShiftSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
}

// ClockResponse is returned by both clock-in and clock-out.
type ClockResponse struct {
	Attendance     AttendanceResponse `json:"attendance"`
	Status         string             `json:"status"`
	LateMinutes    *int               `json:"late_minutes,omitempty"`
	EarlyMinutes   *int               `json:"early_minutes,omitempty"`
	WorkMinutes    *int               `json:"work_minutes,omitempty"`
	Shift          ShiftSummary       `json:"shift"`
	DistanceMeters int                `json:"distance_meters"`
	Message        string             `json:"message"`
}

// ========================================
// READ DTOs
// ========================================

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          *string  `json:"user_name,omitempty"`
	ShiftID           string   `json:"shift_id"`
	ShiftName         *string  `json:"shift_name,omitempty"`
	Date              string   `json:"date"`
	ClockIn           string   `json:"clock_in"`
	ClockOut          *string  `json:"clock_out,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	PhotoURL          *string  `json:"photo_url,omitempty"`
	PhotoOutURL       *string  `json:"photo_out_url,omitempty"`
	ClockInStatus     string   `json:"clock_in_status"`
	ClockOutStatus    *string  `json:"clock_out_status,omitempty"`
	LateMinutes       int      `json:"late_minutes"`
	EarlyMinutes      int      `json:"early_minutes"`
	WorkMinutes       int      `json:"work_minutes"`
	IsManualEntry     bool     `json:"is_manual_entry"`
	ManualEntryBy     *string  `json:"manual_entry_by,omitempty"`
	ManualEntryNote   *string  `json:"manual_entry_note,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// NewAttendanceResponse renders instants on the organisation's wall clock.
func NewAttendanceResponse(a Attendance, clock *worktime.Clock) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID,
		UserID:            a.UserID,
		UserName:          a.UserName,
		ShiftID:           a.ShiftID,
		ShiftName:         a.ShiftName,
		Date:              a.Date.Format("2006-01-02"),
		ClockIn:           clock.Local(a.ClockIn).Format(time.RFC3339),
		ClockInLatitude:   a.ClockInLatitude,
		ClockInLongitude:  a.ClockInLongitude,
		ClockOutLatitude:  a.ClockOutLatitude,
		ClockOutLongitude: a.ClockOutLongitude,
		PhotoURL:          a.PhotoURL,
		PhotoOutURL:       a.PhotoOutURL,
		ClockInStatus:     string(a.ClockInStatus),
		LateMinutes:       a.LateMinutes,
		EarlyMinutes:      a.EarlyMinutes,
		WorkMinutes:       a.WorkMinutes,
		IsManualEntry:     a.IsManualEntry,
		ManualEntryBy:     a.ManualEntryBy,
		ManualEntryNote:   a.ManualEntryNote,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if a.ClockOut != nil {
		out := clock.Local(*a.ClockOut).Format(time.RFC3339)
		resp.ClockOut = &out
	}
	if a.ClockOutStatus != nil {
		status := string(*a.ClockOutStatus)
		resp.ClockOutStatus = &status
	}

	return resp
}

type TodayResponse struct {
	Date          string              `json:"date"`
	DayName       string              `json:"day_name"`
	HasClockedIn  bool                `json:"has_clocked_in"`
	HasClockedOut bool                `json:"has_clocked_out"`
	Attendance    *AttendanceResponse `json:"attendance"`
}

type HistoryFilter struct {
	UserID string `json:"-"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	return errs.Err()
}

type HistorySummary struct {
	Total            int64 `json:"total"`
	LateCount        int64 `json:"late_count"`
	EarlyCount       int64 `json:"early_count"`
	TotalWorkMinutes int64 `json:"total_work_minutes"`
}

type HistoryResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Summary     HistorySummary       `json:"summary"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// MANUAL ENTRY DTOs
// ========================================

// ManualEntryRequest creates a record on behalf of an employee. Times are
// wall-clock HH:MM on Date; a clock-out earlier than the clock-in is only
// accepted for overnight shifts.
type ManualEntryRequest struct {
	AdminID  string  `json:"-"`
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`      // YYYY-MM-DD
	ClockIn  string  `json:"clock_in"`  // HH:MM
	ClockOut *string `json:"clock_out"` // HH:MM
	ShiftID  *string `json:"shift_id,omitempty"`
	Note     *string `json:"note,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	if !validator.IsValidTimeOfDay(r.ClockIn) {
		errs.Add("clock_in", "clock_in must be in HH:MM format")
	}

	if r.ClockOut != nil && !validator.IsValidTimeOfDay(*r.ClockOut) {
		errs.Add("clock_out", "clock_out must be in HH:MM format")
	}

	if r.ShiftID != nil && validator.IsEmpty(*r.ShiftID) {
		errs.Add("shift_id", "shift_id must not be empty")
	}

	validateNote(&errs, r.Note)

	return errs.Err()
}

// ManualUpdateRequest edits an existing record; nil fields are kept.
type ManualUpdateRequest struct {
	ID       string  `json:"-"`
	AdminID  string  `json:"-"`
	ClockIn  *string `json:"clock_in,omitempty"`  // HH:MM
	ClockOut *string `json:"clock_out,omitempty"` // HH:MM
	ShiftID  *string `json:"shift_id,omitempty"`
	Note     *string `json:"note,omitempty"`
}

func (r *ManualUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.ClockIn == nil && r.ClockOut == nil && r.ShiftID == nil && r.Note == nil {
		errs.Add("body", "at least one of clock_in, clock_out, shift_id, note is required")
	}

	if r.ClockIn != nil && !validator.IsValidTimeOfDay(*r.ClockIn) {
		errs.Add("clock_in", "clock_in must be in HH:MM format")
	}

	if r.ClockOut != nil && !validator.IsValidTimeOfDay(*r.ClockOut) {
		errs.Add("clock_out", "clock_out must be in HH:MM format")
	}

	if r.ShiftID != nil && validator.IsEmpty(*r.ShiftID) {
		errs.Add("shift_id", "shift_id must not be empty")
	}

	validateNote(&errs, r.Note)

	return errs.Err()
}

const maxNoteLength = 500

func validateNote(errs *validator.ValidationErrors, note *string) {
	if note != nil && len(*note) > maxNoteLength {
		errs.Add("note", fmt.Sprintf("note must not exceed %d characters", maxNoteLength))
	}
}
