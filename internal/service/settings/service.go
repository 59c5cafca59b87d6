package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{SettingsRepository: settingsRepo}
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	active, err := s.active(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return toSettingsResponse(active), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	active, err := s.active(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	if req.OfficeName != nil {
		active.OfficeName = *req.OfficeName
	}
	if req.OfficeAddress != nil {
		active.OfficeAddress = req.OfficeAddress
	}
	if req.Latitude != nil {
		active.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		active.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		active.RadiusMeters = *req.RadiusMeters
	}

	updated, err := s.SettingsRepository.Update(ctx, active)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update office settings: %w", err)
	}

	slog.Info("office settings updated",
		"office_name", updated.OfficeName,
		"latitude", updated.Latitude,
		"longitude", updated.Longitude,
		"radius_meters", updated.RadiusMeters,
	)

	return toSettingsResponse(updated), nil
}

// TestLocation implements settings.SettingsService.
func (s *SettingsServiceImpl) TestLocation(ctx context.Context, req settings.TestLocationRequest) (settings.TestLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.TestLocationResponse{}, err
	}

	active, err := s.active(ctx)
	if err != nil {
		return settings.TestLocationResponse{}, err
	}

	check := active.Fence().Check(req.Latitude, req.Longitude)

	message := fmt.Sprintf("Location is %dm from %s, within the %dm radius", check.DistanceMeters, active.OfficeName, check.RadiusLimit)
	if !check.WithinRange {
		message = fmt.Sprintf("Location is %dm from %s, outside the %dm radius", check.DistanceMeters, active.OfficeName, check.RadiusLimit)
	}

	return settings.TestLocationResponse{
		Check:      check,
		OfficeName: active.OfficeName,
		OfficeLat:  active.Latitude,
		OfficeLon:  active.Longitude,
		Message:    message,
	}, nil
}

// ValidateLocation implements settings.SettingsService.
func (s *SettingsServiceImpl) ValidateLocation(ctx context.Context, lat, lon float64) (geo.Check, error) {
	active, err := s.active(ctx)
	if err != nil {
		return geo.Check{}, err
	}
	return active.Fence().Check(lat, lon), nil
}

// Provision implements settings.SettingsService.
func (s *SettingsServiceImpl) Provision(ctx context.Context, defaults settings.ProvisionDefaults) (settings.OfficeSettings, bool, error) {
	existing, err := s.SettingsRepository.GetActive(ctx)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, settings.ErrSettingsNotProvisioned) {
		return settings.OfficeSettings{}, false, fmt.Errorf("failed to get office settings: %w", err)
	}

	row := settings.OfficeSettings{
		OfficeName:   defaults.OfficeName,
		Latitude:     defaults.Latitude,
		Longitude:    defaults.Longitude,
		RadiusMeters: defaults.RadiusMeters,
		IsActive:     true,
	}
	if defaults.OfficeAddress != "" {
		address := defaults.OfficeAddress
		row.OfficeAddress = &address
	}

	created, err := s.SettingsRepository.Create(ctx, row)
	if err != nil {
		if errors.Is(err, settings.ErrActiveSettingsExists) {
			// Another instance provisioned first.
			winner, err := s.SettingsRepository.GetActive(ctx)
			if err != nil {
				return settings.OfficeSettings{}, false, fmt.Errorf("failed to get office settings: %w", err)
			}
			return winner, false, nil
		}
		return settings.OfficeSettings{}, false, fmt.Errorf("failed to provision office settings: %w", err)
	}

	slog.Info("office settings provisioned", "office_name", created.OfficeName, "radius_meters", created.RadiusMeters)

	return created, true, nil
}

func (s *SettingsServiceImpl) active(ctx context.Context) (settings.OfficeSettings, error) {
	active, err := s.SettingsRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotProvisioned) {
			return settings.OfficeSettings{}, err
		}
		return settings.OfficeSettings{}, fmt.Errorf("failed to get office settings: %w", err)
	}
	return active, nil
}

func toSettingsResponse(s settings.OfficeSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		ID:            s.ID,
		OfficeName:    s.OfficeName,
		OfficeAddress: s.OfficeAddress,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		RadiusMeters:  s.RadiusMeters,
		UpdatedAt:     s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
