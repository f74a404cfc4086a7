package config

import (
	"fmt"
	"os"
	"strconv"

	"gocorr/domain/stats"
	"gocorr/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Data     DataConfig
	LogLevel string
}

// DatabaseConfig holds the optional report store connection.
// An empty URL keeps reports in memory.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database URL was supplied.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds the statistical defaults.
type AnalysisConfig struct {
	SignificanceLevel float64
	Sidedness         stats.Sidedness
	DimensionWorkers  int
}

// DefaultAnalysisConfig is a two-tailed test at α = 0.05 with four dimension workers.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{SignificanceLevel: 0.05, Sidedness: stats.TwoTailed, DimensionWorkers: 4}
}

// DataConfig points at a dataset loaded at startup.
type DataConfig struct {
	File  string
	Sheet string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	analysis, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	config := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   *loadServerConfig(),
		Analysis: *analysis,
		Data:     *loadDataConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	sidedness, err := stats.ParseSidedness(os.Getenv("TEST_SIDEDNESS"))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	alpha := 0.05
	if raw := os.Getenv("SIGNIFICANCE_LEVEL"); raw != "" {
		alpha, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("SIGNIFICANCE_LEVEL %q is not a number", raw))
		}
	}

	return &AnalysisConfig{
		SignificanceLevel: alpha,
		Sidedness:         sidedness,
		DimensionWorkers:  getEnvIntOrDefault("DIMENSION_WORKERS", 4),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  getEnvOrDefault("DATA_FILE", ""),
		Sheet: getEnvOrDefault("DATA_SHEET", "Sheet1"),
	}
}

func validateConfig(config *Config) error {
	if a := config.Analysis.SignificanceLevel; a <= 0 || a >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("SIGNIFICANCE_LEVEL must be in (0, 1), got %v", a))
	}
	if config.Analysis.DimensionWorkers < 1 {
		return errors.ConfigInvalid("DIMENSION_WORKERS must be at least 1")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
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
