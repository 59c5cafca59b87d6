package http

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auth.TokenResponse), args.Error(1)
}

type mockAttendanceService struct{ mock.Mock }

func (m *mockAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.ClockResponse), args.Error(1)
}

func (m *mockAttendanceService) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.ClockResponse), args.Error(1)
}

func (m *mockAttendanceService) GetToday(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(attendance.TodayResponse), args.Error(1)
}

func (m *mockAttendanceService) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(attendance.HistoryResponse), args.Error(1)
}

func (m *mockAttendanceService) CreateManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.AttendanceResponse), args.Error(1)
}

func (m *mockAttendanceService) UpdateManualEntry(ctx context.Context, req attendance.ManualUpdateRequest) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.AttendanceResponse), args.Error(1)
}

func (m *mockAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(attendance.AttendanceResponse), args.Error(1)
}

func (m *mockAttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSettingsService struct{ mock.Mock }

func (m *mockSettingsService) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.SettingsResponse), args.Error(1)
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(settings.SettingsResponse), args.Error(1)
}

func (m *mockSettingsService) TestLocation(ctx context.Context, req settings.TestLocationRequest) (settings.TestLocationResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(settings.TestLocationResponse), args.Error(1)
}

func (m *mockSettingsService) ValidateLocation(ctx context.Context, lat, lon float64) (geo.Check, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(geo.Check), args.Error(1)
}

func (m *mockSettingsService) Provision(ctx context.Context, defaults settings.ProvisionDefaults) (settings.OfficeSettings, bool, error) {
	args := m.Called(ctx, defaults)
	return args.Get(0).(settings.OfficeSettings), args.Bool(1), args.Error(2)
}

type mockShiftService struct{ mock.Mock }

func (m *mockShiftService) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shift.ShiftResponse), args.Error(1)
}

func (m *mockShiftService) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shift.ShiftResponse), args.Error(1)
}

func (m *mockShiftService) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shift.ShiftResponse), args.Error(1)
}

func (m *mockShiftService) DeleteShift(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockShiftService) GetUserSchedule(ctx context.Context, userID string) (shift.UserScheduleResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(shift.UserScheduleResponse), args.Error(1)
}

func (m *mockShiftService) SetSchedule(ctx context.Context, req shift.SetScheduleRequest) (shift.ScheduleResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shift.ScheduleResponse), args.Error(1)
}

func (m *mockShiftService) BulkSetSchedule(ctx context.Context, req shift.BulkSetScheduleRequest) (shift.UserScheduleResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shift.UserScheduleResponse), args.Error(1)
}

func (m *mockShiftService) DeleteSchedule(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
