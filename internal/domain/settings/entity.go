package settings

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
)

const (
	MinRadiusMeters = 10
	MaxRadiusMeters = 5000
)

// OfficeSettings is the single active office location clock events are
// measured against.
type OfficeSettings struct {
	ID            string
	OfficeName    string
	OfficeAddress *string
	Latitude      float64
	Longitude     float64
	RadiusMeters  int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s OfficeSettings) Fence() geo.Fence {
	return geo.Fence{
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		RadiusMeters: s.RadiusMeters,
	}
}
