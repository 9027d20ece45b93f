package config

import (
	"os"
	"strconv"
	"time"

	"groupstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Excel    ExcelConfig
	Compute  ComputeConfig
}

// DatabaseConfig holds database connection settings.
// An empty URL keeps computation history in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// ExcelConfig holds spreadsheet import settings
type ExcelConfig struct {
	Sheet string
}

// ComputeConfig holds computation service settings
type ComputeConfig struct {
	BatchConcurrency int
	HistoryLimit     int
	BinCount         int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: *loadDatabaseConfig(),
		Server:   *loadServerConfig(),
		Excel:    *loadExcelConfig(),
		Compute:  *loadComputeConfig(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

// HasDatabase reports whether computation history should go to PostgreSQL
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:             getEnvOrDefault("DATABASE_URL", ""),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadExcelConfig() *ExcelConfig {
	return &ExcelConfig{
		Sheet: getEnvOrDefault("EXCEL_SHEET", "Sheet1"),
	}
}

func loadComputeConfig() *ComputeConfig {
	return &ComputeConfig{
		BatchConcurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
		HistoryLimit:     getEnvIntOrDefault("HISTORY_LIMIT", 20),
		BinCount:         getEnvIntOrDefault("BIN_COUNT", 0),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Database.MaxOpenConns < 1 {
		return errors.ConfigInvalid("DB_MAX_OPEN_CONNS must be positive")
	}
	if config.Compute.BatchConcurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be positive")
	}
	if config.Compute.HistoryLimit < 1 {
		return errors.ConfigInvalid("HISTORY_LIMIT must be positive")
	}
	if config.Compute.BinCount < 0 {
		return errors.ConfigInvalid("BIN_COUNT cannot be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
