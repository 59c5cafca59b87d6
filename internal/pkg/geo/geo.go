package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// Rounding can push a a hair above 1 for antipodal points.
	a = math.Min(1, a)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// ValidLatitude reports whether lat is finite and within [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is finite and within [-180, 180].
func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && !math.IsInf(lon, 0) && lon >= -180 && lon <= 180
}

// Fence is a circular geofence around an office.
type Fence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

// Check is the outcome of testing a point against a Fence.
type Check struct {
	WithinRange    bool `json:"within_range"`
	DistanceMeters int  `json:"distance_meters"`
	RadiusLimit    int  `json:"radius_limit"`
}

// Check measures the point against the fence. The comparison uses the exact
// distance; DistanceMeters is rounded for display only.
func (f Fence) Check(lat, lon float64) Check {
	d := Distance(f.Latitude, f.Longitude, lat, lon)
	return Check{
		WithinRange:    d <= float64(f.RadiusMeters),
		DistanceMeters: int(math.Round(d)),
		RadiusLimit:    f.RadiusMeters,
	}
}
