package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	Office     OfficeConfig
	Attendance AttendanceConfig
	Telemetry  TelemetryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// OfficeConfig is only used to provision the office settings row on first boot.
type OfficeConfig struct {
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

type AttendanceConfig struct {
	// Timezone is an IANA zone name or a fixed UTC offset such as "+07:00".
	Timezone             string
	ShiftLegacyFallback  bool
	DefaultToleranceMins int

	// AutoCloseInterval of zero disables the stale record job.
	AutoCloseInterval time.Duration
	AutoCloseGrace    time.Duration
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
	Insecure     bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "-7.0051"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "110.4381"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.Atoi(getEnv("OFFICE_RADIUS_METERS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	config.Office = OfficeConfig{
		Name:         getEnv("OFFICE_NAME", "Kantor Pusat"),
		Address:      getEnv("OFFICE_ADDRESS", ""),
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: officeRadius,
	}

	legacyFallback, err := strconv.ParseBool(getEnv("SHIFT_LEGACY_FALLBACK", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_LEGACY_FALLBACK: %w", err)
	}
	defaultTolerance, err := strconv.Atoi(getEnv("SHIFT_DEFAULT_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_DEFAULT_TOLERANCE_MINUTES: %w", err)
	}

	autoCloseInterval, err := time.ParseDuration(getEnv("ATTENDANCE_AUTO_CLOSE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_CLOSE_INTERVAL: %w", err)
	}
	autoCloseGrace, err := time.ParseDuration(getEnv("ATTENDANCE_AUTO_CLOSE_GRACE", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_CLOSE_GRACE: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:             getEnv("ATTENDANCE_TIMEZONE", "+07:00"),
		ShiftLegacyFallback:  legacyFallback,
		DefaultToleranceMins: defaultTolerance,
		AutoCloseInterval:    autoCloseInterval,
		AutoCloseGrace:       autoCloseGrace,
	}

	config.Telemetry = TelemetryConfig{
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "attendance-backend"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Insecure:     getEnv("OTEL_EXPORTER_OTLP_INSECURE", "false") == "true",
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Office.RadiusMeters < 10 || c.Office.RadiusMeters > 5000 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must be between 10 and 5000")
	}
	if c.Office.Latitude < -90 || c.Office.Latitude > 90 {
		return fmt.Errorf("OFFICE_LATITUDE must be between -90 and 90")
	}
	if c.Office.Longitude < -180 || c.Office.Longitude > 180 {
		return fmt.Errorf("OFFICE_LONGITUDE must be between -180 and 180")
	}
	if c.Attendance.DefaultToleranceMins < 0 || c.Attendance.DefaultToleranceMins > 60 {
		return fmt.Errorf("SHIFT_DEFAULT_TOLERANCE_MINUTES must be between 0 and 60")
	}
	if c.Attendance.AutoCloseInterval < 0 || c.Attendance.AutoCloseGrace < 0 {
		return fmt.Errorf("ATTENDANCE_AUTO_CLOSE_INTERVAL and ATTENDANCE_AUTO_CLOSE_GRACE must not be negative")
	}
	if c.Attendance.Timezone == "" {
		return fmt.Errorf("ATTENDANCE_TIMEZONE is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
