package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Ledger   LedgerConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// LedgerConfig holds the time bank settings
type LedgerConfig struct {
	AuditInterval time.Duration
	HolidayRegion string
}

// Load reads the environment, a .env file is optional.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
		slog.Warn("No .env file found, using environment only")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "timebank"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: autoMigrate,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Ledger configuration
	auditInterval, err := time.ParseDuration(getEnv("LEDGER_AUDIT_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_AUDIT_INTERVAL: %w", err)
	}
	config.Ledger = LedgerConfig{
		AuditInterval: auditInterval,
		HolidayRegion: getEnv("HOLIDAY_REGION", "fr"),
	}

	// Validate required fields
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Ledger.AuditInterval <= 0 {
		return fmt.Errorf("LEDGER_AUDIT_INTERVAL must be positive")
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

// SlogLevel maps LOG_LEVEL to a slog level, info when unknown.
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

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
