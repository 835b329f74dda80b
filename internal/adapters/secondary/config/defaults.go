package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment
// overrides applied
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Stage: entities.StageConfig{
			Host: getEnvOrDefault("WEBDECK_STAGE_HOST", ""),
			Port: getEnvIntOrDefault("WEBDECK_STAGE_PORT", 9124),
			CORSOrigins: []string{
				"http://localhost:9124",
				"http://127.0.0.1:9124",
			},
		},
		Browser: entities.BrowserConfig{
			AutoOpen: getEnvBoolOrDefault("WEBDECK_AUTO_OPEN", true),
		},
		Zoom: entities.ZoomConfig{
			Step: 0.25,
			Min:  0.5,
			Max:  3.0,
		},
		Watcher: entities.WatcherConfig{
			Enabled:    true,
			IntervalMs: 200,
			DebounceMs: 500,
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("WEBDECK_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("WEBDECK_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
