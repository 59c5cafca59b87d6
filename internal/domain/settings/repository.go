package settings

import "context"

type SettingsRepository interface {
	// GetActive returns ErrSettingsNotProvisioned when no active row exists.
	GetActive(ctx context.Context) (OfficeSettings, error)
	Create(ctx context.Context, s OfficeSettings) (OfficeSettings, error)
	Update(ctx context.Context, s OfficeSettings) (OfficeSettings, error)
}
