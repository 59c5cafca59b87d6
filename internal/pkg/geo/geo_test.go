package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	officeLat = -7.0051
	officeLon = 110.4381
)

// northOf returns the point d meters due north of (lat, lon).
func northOf(lat, lon, d float64) (float64, float64) {
	return lat + (d/EarthRadiusMeters)*(180/math.Pi), lon
}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{officeLat, officeLon},
		{0, 0},
		{89.9, -179.9},
		{-45.5, 12.25},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{officeLat, officeLon, -6.2, 106.8},
		{51.5, -0.12, 40.71, -74.0},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-6)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// One degree of latitude along a meridian.
	want := EarthRadiusMeters * math.Pi / 180
	assert.InDelta(t, want, Distance(0, 0, 1, 0), 0.001)
}

func TestFence_Scenario(t *testing.T) {
	fence := Fence{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 300}

	lat, lon := northOf(officeLat, officeLon, 250)
	near := fence.Check(lat, lon)
	assert.True(t, near.WithinRange)
	assert.Equal(t, 250, near.DistanceMeters)
	assert.Equal(t, 300, near.RadiusLimit)

	lat, lon = northOf(officeLat, officeLon, 400)
	far := fence.Check(lat, lon)
	assert.False(t, far.WithinRange)
	assert.Equal(t, 400, far.DistanceMeters)
}

func TestFence_BoundaryIsInclusive(t *testing.T) {
	fence := Fence{Latitude: 0, Longitude: 0, RadiusMeters: 100}
	lat, lon := northOf(0, 0, 99.999)
	assert.True(t, fence.Check(lat, lon).WithinRange)
}

func TestFence_MonotonicInRadius(t *testing.T) {
	lat, lon := northOf(officeLat, officeLon, 275)
	prev := false
	for radius := 10; radius <= 1000; radius += 10 {
		got := Fence{Latitude: officeLat, Longitude: officeLon, RadiusMeters: radius}.Check(lat, lon).WithinRange
		if prev {
			assert.True(t, got, "radius %d turned a valid point invalid", radius)
		}
		prev = got
	}
	assert.True(t, prev)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidLatitude(-90))
	assert.True(t, ValidLatitude(90))
	assert.False(t, ValidLatitude(90.0001))
	assert.False(t, ValidLatitude(math.NaN()))
	assert.False(t, ValidLatitude(math.Inf(1)))

	assert.True(t, ValidLongitude(-180))
	assert.True(t, ValidLongitude(180))
	assert.False(t, ValidLongitude(-180.5))
	assert.False(t, ValidLongitude(math.Inf(-1)))
}
