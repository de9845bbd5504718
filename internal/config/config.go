package config

import (
	"os"
	"strconv"
	"time"

	"boothpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Import   ImportConfig   `validate:"required"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string `validate:"required"`
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// ImportConfig holds upload pipeline settings
type ImportConfig struct {
	MaxUploadMB          int64
	PreviewRows          int
	ErrorDisplayCap      int
	SubmitResetDelay     time.Duration
	MaxConcurrentSubmits int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = *loadServerConfig()
	config.Import = *loadImportConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadImportConfig() *ImportConfig {
	return &ImportConfig{
		MaxUploadMB:          int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
		PreviewRows:          getEnvIntOrDefault("PREVIEW_ROWS", 10),
		ErrorDisplayCap:      getEnvIntOrDefault("ERROR_DISPLAY_CAP", 50),
		SubmitResetDelay:     getEnvDurationOrDefault("SUBMIT_RESET_DELAY", 2*time.Second),
		MaxConcurrentSubmits: int64(getEnvIntOrDefault("MAX_CONCURRENT_SUBMITS", 4)),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Import.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Import.MaxConcurrentSubmits <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_SUBMITS must be positive")
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
