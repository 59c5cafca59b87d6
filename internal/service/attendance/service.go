package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/worktime"
)

const (
	clockTypeIn  = "CLOCK_IN"
	clockTypeOut = "CLOCK_OUT"
)

// LocationValidator checks a coordinate against the office geofence.
type LocationValidator interface {
	ValidateLocation(ctx context.Context, lat, lon float64) (geo.Check, error)
}

// ProofUploader stores a proof photo and returns its public URL.
type ProofUploader interface {
	UploadAttendanceProof(ctx context.Context, userID string, date time.Time, file io.Reader, filename string, clockType string) (string, error)
}

type AttendanceServiceImpl struct {
	tx database.TxManager
	attendance.AttendanceRepository
	shiftRepo  shift.ShiftRepository
	resolver   shift.Resolver
	locations  LocationValidator
	uploader   ProofUploader
	calculator *Calculator
	clock      *worktime.Clock
	now        func() time.Time
}

func NewAttendanceService(
	tx database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	resolver shift.Resolver,
	locations LocationValidator,
	uploader ProofUploader,
	clock *worktime.Clock,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		shiftRepo:            shiftRepo,
		resolver:             resolver,
		locations:            locations,
		uploader:             uploader,
		calculator:           NewCalculator(clock),
		clock:                clock,
		now:                  time.Now,
	}
}

// checkLocation turns a geofence rejection into an OutOfRangeError.
func (a *AttendanceServiceImpl) checkLocation(ctx context.Context, lat, lon float64) (geo.Check, error) {
	check, err := a.locations.ValidateLocation(ctx, lat, lon)
	if err != nil {
		return geo.Check{}, fmt.Errorf("failed to validate location: %w", err)
	}
	if !check.WithinRange {
		return check, &attendance.OutOfRangeError{
			DistanceMeters: check.DistanceMeters,
			RadiusMeters:   check.RadiusLimit,
		}
	}
	return check, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResponse{}, err
	}
	nowUTC := a.now().UTC()
	date := a.clock.Date(nowUTC)

	check, err := a.checkLocation(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, date)
	if err != nil {
		return attendance.ClockResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.ClockResponse{}, &attendance.AlreadyClockedInError{ClockIn: existing.ClockIn}
	}

	activeShift, err := a.resolver.ResolveShift(ctx, req.UserID, nowUTC)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	result := a.calculator.ClockIn(activeShift, date, nowUTC)

	photoURL, err := a.uploader.UploadAttendanceProof(ctx, req.UserID, date, req.File, req.FileHeader.Filename, clockTypeIn)
	if err != nil {
		return attendance.ClockResponse{}, fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	data := attendance.Attendance{
		UserID:           req.UserID,
		ShiftID:          activeShift.ID,
		Date:             date,
		ClockIn:          nowUTC,
		ClockInLatitude:  &req.Latitude,
		ClockInLongitude: &req.Longitude,
		PhotoURL:         &photoURL,
		ClockInStatus:    result.Status,
		LateMinutes:      result.LateMinutes,
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			// Lost the race against a concurrent clock-in for the same day.
			slog.Warn("concurrent clock-in rejected", "user_id", req.UserID, "date", date.Format("2006-01-02"), "orphaned_photo", photoURL)
			return attendance.ClockResponse{}, a.alreadyClockedIn(ctx, req.UserID, date)
		}
		return attendance.ClockResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	created.ShiftName = &activeShift.Name

	slog.Info("clock-in recorded",
		"user_id", req.UserID,
		"attendance_id", created.ID,
		"status", created.ClockInStatus,
		"late_minutes", created.LateMinutes,
		"distance_meters", check.DistanceMeters,
	)

	resp := attendance.ClockResponse{
		Attendance:     attendance.NewAttendanceResponse(created, a.clock),
		Status:         string(result.Status),
		Shift:          shiftSummary(activeShift),
		DistanceMeters: check.DistanceMeters,
		Message:        "Clock-in successful",
	}
	if result.Status == attendance.ClockInLate {
		resp.LateMinutes = &created.LateMinutes
		resp.Message = fmt.Sprintf("Clock-in successful, late by %d minutes", created.LateMinutes)
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) alreadyClockedIn(ctx context.Context, userID string, date time.Time) error {
	winner, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if winner == nil {
		return attendance.ErrAlreadyClockedIn
	}
	return &attendance.AlreadyClockedInError{ClockIn: winner.ClockIn}
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResponse{}, err
	}
	nowUTC := a.now().UTC()

	check, err := a.checkLocation(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	open, recordShift, err := a.findOpenRecord(ctx, req.UserID, nowUTC)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	result, err := a.calculator.ClockOut(recordShift, open.Date, open.ClockIn, nowUTC)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	photoURL, err := a.uploader.UploadAttendanceProof(ctx, req.UserID, open.Date, req.File, req.FileHeader.Filename, clockTypeOut)
	if err != nil {
		return attendance.ClockResponse{}, fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	open.ClockOut = &nowUTC
	open.ClockOutLatitude = &req.Latitude
	open.ClockOutLongitude = &req.Longitude
	open.PhotoOutURL = &photoURL
	open.ClockOutStatus = &result.Status
	open.EarlyMinutes = result.EarlyMinutes
	open.WorkMinutes = result.WorkMinutes

	closed, err := a.AttendanceRepository.CloseOpen(ctx, open)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenClockIn) {
			return attendance.ClockResponse{}, attendance.ErrNoOpenClockIn
		}
		return attendance.ClockResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	closed.ShiftName = &recordShift.Name

	slog.Info("clock-out recorded",
		"user_id", req.UserID,
		"attendance_id", closed.ID,
		"status", result.Status,
		"early_minutes", result.EarlyMinutes,
		"work_minutes", result.WorkMinutes,
	)

	resp := attendance.ClockResponse{
		Attendance:     attendance.NewAttendanceResponse(closed, a.clock),
		Status:         string(result.Status),
		WorkMinutes:    &closed.WorkMinutes,
		Shift:          shiftSummary(recordShift),
		DistanceMeters: check.DistanceMeters,
		Message:        "Clock-out successful",
	}
	if result.Status == attendance.ClockOutEarly {
		resp.EarlyMinutes = &closed.EarlyMinutes
		resp.Message = fmt.Sprintf("Clock-out successful, left %d minutes early", closed.EarlyMinutes)
	}

	return resp, nil
}

// findOpenRecord returns today's open record, or yesterday's when it belongs
// to an overnight shift that has not been closed yet.
func (a *AttendanceServiceImpl) findOpenRecord(ctx context.Context, userID string, now time.Time) (attendance.Attendance, shift.Shift, error) {
	today := a.clock.Date(now)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.Attendance{}, shift.Shift{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record != nil {
		if !record.IsOpen() {
			return attendance.Attendance{}, shift.Shift{}, attendance.ErrNoOpenClockIn
		}
		s, err := a.shiftRepo.GetByID(ctx, record.ShiftID)
		if err != nil {
			return attendance.Attendance{}, shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
		}
		return *record, s, nil
	}

	record, err = a.AttendanceRepository.GetByUserAndDate(ctx, userID, today.AddDate(0, 0, -1))
	if err != nil {
		return attendance.Attendance{}, shift.Shift{}, fmt.Errorf("failed to get yesterday's attendance: %w", err)
	}
	if record == nil || !record.IsOpen() {
		return attendance.Attendance{}, shift.Shift{}, attendance.ErrNoOpenClockIn
	}

	s, err := a.shiftRepo.GetByID(ctx, record.ShiftID)
	if err != nil {
		return attendance.Attendance{}, shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	if !s.IsOvernight() {
		return attendance.Attendance{}, shift.Shift{}, attendance.ErrNoOpenClockIn
	}

	return *record, s, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	now := a.now().UTC()
	date := a.clock.Date(now)

	resp := attendance.TodayResponse{
		Date:    date.Format("2006-01-02"),
		DayName: worktime.DayName(a.clock.Weekday(now)),
	}

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return resp, nil
	}

	r := attendance.NewAttendanceResponse(*record, a.clock)
	resp.Attendance = &r
	resp.HasClockedIn = true
	resp.HasClockedOut = !record.IsOpen()

	return resp, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	offset := (filter.Page - 1) * filter.Limit
	records, total, err := a.AttendanceRepository.ListByUser(ctx, filter.UserID, filter.Limit, offset)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	summary, err := a.AttendanceRepository.SummarizeByUser(ctx, filter.UserID)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to summarize attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec, a.clock))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", offset+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 || offset >= int(total) {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.HistoryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Summary: attendance.HistorySummary{
			Total:            summary.Total,
			LateCount:        summary.LateCount,
			EarlyCount:       summary.EarlyCount,
			TotalWorkMinutes: summary.TotalWorkMinutes,
		},
		Attendances: responses,
	}, nil
}

// CreateManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := worktime.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	var entryShift shift.Shift
	if req.ShiftID != nil {
		entryShift, err = a.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	} else {
		// Noon avoids the date boundary of the organisation zone.
		noon := a.clock.At(date, worktime.TimeOfDay{Hour: 12})
		entryShift, err = a.resolver.ResolveShift(ctx, req.UserID, noon)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	record := attendance.Attendance{
		UserID:          req.UserID,
		Date:            date,
		IsManualEntry:   true,
		ManualEntryBy:   &req.AdminID,
		ManualEntryNote: req.Note,
	}

	clockIn, err := a.manualClockIn(date, req.ClockIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	var clockOut *time.Time
	if req.ClockOut != nil {
		out, err := a.manualClockOut(date, entryShift, clockIn, *req.ClockOut)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		clockOut = &out
	}

	if err := a.applyManualTimes(&record, entryShift, clockIn, clockOut); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.AttendanceResponse{}, a.alreadyClockedIn(ctx, req.UserID, date)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create manual attendance: %w", err)
	}
	created.ShiftName = &entryShift.Name

	slog.Info("manual attendance created", "attendance_id", created.ID, "user_id", req.UserID, "admin_id", req.AdminID)

	return attendance.NewAttendanceResponse(created, a.clock), nil
}

// UpdateManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateManualEntry(ctx context.Context, req attendance.ManualUpdateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	var entryShift shift.Shift
	err := a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		shiftID := record.ShiftID
		if req.ShiftID != nil {
			shiftID = *req.ShiftID
		}
		entryShift, err = a.shiftRepo.GetByID(txCtx, shiftID)
		if err != nil {
			return err
		}

		if req.ClockIn != nil || req.ClockOut != nil || req.ShiftID != nil {
			clockIn := record.ClockIn
			if req.ClockIn != nil {
				if clockIn, err = a.manualClockIn(record.Date, *req.ClockIn); err != nil {
					return err
				}
			}
			clockOut := record.ClockOut
			if req.ClockOut != nil {
				out, err := a.manualClockOut(record.Date, entryShift, clockIn, *req.ClockOut)
				if err != nil {
					return err
				}
				clockOut = &out
			}

			if err := a.applyManualTimes(&record, entryShift, clockIn, clockOut); err != nil {
				return err
			}
		}

		record.IsManualEntry = true
		record.ManualEntryBy = &req.AdminID
		if req.Note != nil {
			record.ManualEntryNote = req.Note
		}

		updated, err = a.AttendanceRepository.Update(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	updated.ShiftName = &entryShift.Name

	slog.Info("manual attendance updated", "attendance_id", updated.ID, "admin_id", req.AdminID)

	return attendance.NewAttendanceResponse(updated, a.clock), nil
}

// manualClockIn places an HH:MM wall-clock time on the record's date.
func (a *AttendanceServiceImpl) manualClockIn(date time.Time, clockIn string) (time.Time, error) {
	inTime, err := worktime.ParseTimeOfDay(clockIn)
	if err != nil {
		return time.Time{}, fieldError("clock_in", "clock_in must be in HH:MM format")
	}
	return a.clock.At(date, inTime), nil
}

// manualClockOut places an HH:MM clock-out on the record's date. A time not
// after the clock-in rolls to the next day only for overnight shifts.
func (a *AttendanceServiceImpl) manualClockOut(date time.Time, s shift.Shift, clockIn time.Time, clockOut string) (time.Time, error) {
	outTime, err := worktime.ParseTimeOfDay(clockOut)
	if err != nil {
		return time.Time{}, fieldError("clock_out", "clock_out must be in HH:MM format")
	}

	out := a.clock.At(date, outTime)
	if !out.After(clockIn) && s.IsOvernight() {
		out = a.clock.At(date.AddDate(0, 0, 1), outTime)
	}
	return out, nil
}

// applyManualTimes stores the given instants on the record and recomputes
// every derived field against s.
func (a *AttendanceServiceImpl) applyManualTimes(record *attendance.Attendance, s shift.Shift, clockIn time.Time, clockOut *time.Time) error {
	record.ShiftID = s.ID
	record.ClockIn = clockIn

	in := a.calculator.ClockIn(s, record.Date, record.ClockIn)
	record.ClockInStatus = in.Status
	record.LateMinutes = in.LateMinutes

	if clockOut == nil {
		record.ClockOut = nil
		record.ClockOutStatus = nil
		record.EarlyMinutes = 0
		record.WorkMinutes = 0
		return nil
	}

	out, err := a.calculator.ClockOut(s, record.Date, record.ClockIn, *clockOut)
	if err != nil {
		if errors.Is(err, attendance.ErrClockOutNotAfterClockIn) {
			return fieldError("clock_out", "clock_out must be after clock_in")
		}
		return err
	}

	outInstant := *clockOut
	record.ClockOut = &outInstant
	record.ClockOutStatus = &out.Status
	record.EarlyMinutes = out.EarlyMinutes
	record.WorkMinutes = out.WorkMinutes

	return nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(record, a.clock), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	slog.Info("attendance deleted", "attendance_id", id)
	return nil
}

func shiftSummary(s shift.Shift) attendance.ShiftSummary {
	return attendance.ShiftSummary{
		ID:               s.ID,
		Name:             s.Name,
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		ToleranceMinutes: s.ToleranceMinutes,
	}
}

func fieldError(field, message string) error {
	return validator.ValidationErrors{{Field: field, Message: message}}
}
