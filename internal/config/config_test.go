package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "+07:00", cfg.Attendance.Timezone)
	assert.False(t, cfg.Attendance.ShiftLegacyFallback)
	assert.Equal(t, 15, cfg.Attendance.DefaultToleranceMins)
	assert.InDelta(t, -7.0051, cfg.Office.Latitude, 1e-9)
	assert.InDelta(t, 110.4381, cfg.Office.Longitude, 1e-9)
	assert.Equal(t, 300, cfg.Office.RadiusMeters)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Attendance.AutoCloseInterval)
	assert.Equal(t, 2*time.Hour, cfg.Attendance.AutoCloseGrace)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"DB_PORT":               "not-a-port",
		"OFFICE_LATITUDE":       "north",
		"OFFICE_RADIUS_METERS":  "wide",
		"SHIFT_LEGACY_FALLBACK": "maybe",

		"ATTENDANCE_AUTO_CLOSE_INTERVAL": "hourly",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate_RadiusBounds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OFFICE_RADIUS_METERS", "5")

	_, err := Load()
	assert.ErrorContains(t, err, "OFFICE_RADIUS_METERS")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "att", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5433/att?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{}
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		cfg.App.LogLevel = in
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
