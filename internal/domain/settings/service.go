package settings

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
)

type SettingsService interface {
	// GetSettings returns the active office settings
	GetSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings changes the office location or radius
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// TestLocation reports how a coordinate measures against the geofence
	TestLocation(ctx context.Context, req TestLocationRequest) (TestLocationResponse, error)

	// ValidateLocation is the geofence check used by clock events
	ValidateLocation(ctx context.Context, lat, lon float64) (geo.Check, error)

	// Provision creates the settings row when none exists; created is false
	// when an active row was already present
	Provision(ctx context.Context, defaults ProvisionDefaults) (s OfficeSettings, created bool, err error)
}
