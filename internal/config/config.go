package config

import (
	"os"
	"strings"

	"datacleaner/internal"
	"datacleaner/internal/errors"
)

// DefaultDatePatterns are the column-name fragments that mark a date column
var DefaultDatePatterns = []string{"date", "time", "timestamp", "dob", "created", "updated"}

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig
	Cleaning CleaningConfig
	Data     DataConfig
}

// LoggingConfig holds log sink settings
type LoggingConfig struct {
	Level    string
	FilePath string
}

// CleaningConfig holds pipeline settings
type CleaningConfig struct {
	FallbackValue string
	DatePatterns  []string
}

// DataConfig holds file format settings
type DataConfig struct {
	SheetName string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	return LoadWithLogLevel("")
}

// LoadWithLogLevel is Load with the log level taken from level when it is
// not empty, ahead of DATACLEANER_LOG_LEVEL.
func LoadWithLogLevel(level string) (*Config, error) {
	config := &Config{
		Logging:  *loadLoggingConfig(),
		Cleaning: *loadCleaningConfig(),
		Data:     *loadDataConfig(),
	}
	if level != "" {
		config.Logging.Level = strings.ToUpper(strings.TrimSpace(level))
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:    getEnvOrDefault("DATACLEANER_LOG_LEVEL", "INFO"),
		FilePath: getEnvOrDefault("DATACLEANER_LOG_FILE", "data_cleaner.log"),
	}
}

func loadCleaningConfig() *CleaningConfig {
	return &CleaningConfig{
		FallbackValue: getEnvOrDefault("DATACLEANER_FALLBACK_VALUE", "Unknown"),
		DatePatterns:  getEnvListOrDefault("DATACLEANER_DATE_PATTERNS", DefaultDatePatterns),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		SheetName: getEnvOrDefault("DATACLEANER_SHEET", ""),
	}
}

func validateConfig(config *Config) error {
	if _, err := internal.ParseLogLevel(config.Logging.Level); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if config.Logging.FilePath == "" {
		return errors.ConfigInvalid("log file path is required")
	}
	if len(config.Cleaning.DatePatterns) == 0 {
		return errors.ConfigInvalid("at least one date pattern is required")
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

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			items = append(items, item)
		}
	}
	return items
}
