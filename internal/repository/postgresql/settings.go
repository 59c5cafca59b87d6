package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, office_name, office_address, latitude, longitude, radius_meters, is_active, created_at, updated_at`

func scanSettings(row pgx.Row) (settings.OfficeSettings, error) {
	var s settings.OfficeSettings
	err := row.Scan(&s.ID, &s.OfficeName, &s.OfficeAddress, &s.Latitude, &s.Longitude, &s.RadiusMeters, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetActive implements settings.SettingsRepository.
func (r *settingsRepository) GetActive(ctx context.Context) (settings.OfficeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM office_settings WHERE is_active ORDER BY created_at LIMIT 1`

	s, err := scanSettings(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.OfficeSettings{}, settings.ErrSettingsNotProvisioned
		}
		return settings.OfficeSettings{}, fmt.Errorf("failed to get office settings: %w", err)
	}

	return s, nil
}

// Create implements settings.SettingsRepository.
func (r *settingsRepository) Create(ctx context.Context, s settings.OfficeSettings) (settings.OfficeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_settings (office_name, office_address, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + settingsColumns

	created, err := scanSettings(q.QueryRow(ctx, query, s.OfficeName, s.OfficeAddress, s.Latitude, s.Longitude, s.RadiusMeters, s.IsActive))
	if err != nil {
		if isUniqueViolation(err) {
			return settings.OfficeSettings{}, settings.ErrActiveSettingsExists
		}
		return settings.OfficeSettings{}, fmt.Errorf("failed to create office settings: %w", err)
	}

	return created, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, s settings.OfficeSettings) (settings.OfficeSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE office_settings
		SET office_name = $2,
			office_address = $3,
			latitude = $4,
			longitude = $5,
			radius_meters = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + settingsColumns

	updated, err := scanSettings(q.QueryRow(ctx, query, s.ID, s.OfficeName, s.OfficeAddress, s.Latitude, s.Longitude, s.RadiusMeters))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.OfficeSettings{}, settings.ErrSettingsNotProvisioned
		}
		return settings.OfficeSettings{}, fmt.Errorf("failed to update office settings: %w", err)
	}

	return updated, nil
}
