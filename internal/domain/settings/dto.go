package settings

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/geo"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

type SettingsResponse struct {
	ID            string  `json:"id"`
	OfficeName    string  `json:"office_name"`
	OfficeAddress *string `json:"office_address,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  int     `json:"radius_meters"`
	UpdatedAt     string  `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	OfficeName    *string  `json:"office_name,omitempty"`
	OfficeAddress *string  `json:"office_address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	RadiusMeters  *int     `json:"radius_meters,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OfficeName != nil && validator.IsEmpty(*r.OfficeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_name",
			Message: "office_name must not be empty",
		})
	}

	if r.Latitude != nil && !geo.ValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !geo.ValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && (*r.RadiusMeters < MinRadiusMeters || *r.RadiusMeters > MaxRadiusMeters) {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: fmt.Sprintf("radius_meters must be between %d and %d", MinRadiusMeters, MaxRadiusMeters),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TestLocationRequest is an admin dry run of the geofence.
type TestLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *TestLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !geo.ValidLatitude(r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if !geo.ValidLongitude(r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.Err()
}

type TestLocationResponse struct {
	geo.Check
	OfficeName string  `json:"office_name"`
	OfficeLat  float64 `json:"office_latitude"`
	OfficeLon  float64 `json:"office_longitude"`
	Message    string  `json:"message"`
}

// ProvisionDefaults seeds the office row on first boot.
type ProvisionDefaults struct {
	OfficeName    string
	OfficeAddress string
	Latitude      float64
	Longitude     float64
	RadiusMeters  int
}
