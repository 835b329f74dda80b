package entities

import (
	"fmt"
	"strings"
)

// Config is the full application configuration. The remote-control port is
// deliberately absent: phones pair by typing the address, so it stays a fixed
// constant rather than a setting.
type Config struct {
	Stage   StageConfig   `toml:"stage"`
	Browser BrowserConfig `toml:"browser"`
	Zoom    ZoomConfig    `toml:"zoom"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate checks the complete configuration
func (c *Config) Validate() error {
	if err := c.Stage.Validate(); err != nil {
		return fmt.Errorf("stage config: %w", err)
	}
	if err := c.Zoom.Validate(); err != nil {
		return fmt.Errorf("zoom config: %w", err)
	}
	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// StageConfig configures the stage HTTP server
type StageConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Validate checks the stage server settings
func (s *StageConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", s.Port)
	}
	if strings.ContainsAny(s.Host, " !") {
		return fmt.Errorf("invalid host: %s", s.Host)
	}
	return nil
}

// URL returns the stage page address for browsers on this machine
func (s *StageConfig) URL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d/", host, s.Port)
}

// BrowserConfig configures automatic browser launching on Play
type BrowserConfig struct {
	AutoOpen bool `toml:"auto_open"`
}

// ZoomConfig bounds the zoom level applied to the active slide
type ZoomConfig struct {
	Step float64 `toml:"step"`
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
}

// Validate checks zoom bounds are coherent
func (z *ZoomConfig) Validate() error {
	if z.Step <= 0 {
		return fmt.Errorf("zoom step must be positive, got %v", z.Step)
	}
	if z.Min <= 0 || z.Max < z.Min {
		return fmt.Errorf("zoom bounds must satisfy 0 < min <= max, got [%v, %v]", z.Min, z.Max)
	}
	return nil
}

// Clamp bounds a zoom level to [Min, Max]
func (z *ZoomConfig) Clamp(level float64) float64 {
	if level < z.Min {
		return z.Min
	}
	if level > z.Max {
		return z.Max
	}
	return level
}

// WatcherConfig configures deck file watching
type WatcherConfig struct {
	Enabled    bool `toml:"enabled"`
	IntervalMs int  `toml:"interval_ms"`
	DebounceMs int  `toml:"debounce_ms"`
}

// Validate checks watcher timing settings
func (w *WatcherConfig) Validate() error {
	if w.IntervalMs <= 0 {
		return fmt.Errorf("watcher interval must be positive, got %d", w.IntervalMs)
	}
	if w.DebounceMs < 0 {
		return fmt.Errorf("watcher debounce must not be negative, got %d", w.DebounceMs)
	}
	return nil
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig configures application logging
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // Enable verbose logging
}

// Validate checks the configured level is known
func (l *LoggingConfig) Validate() error {
	if l.Level == "" {
		return nil
	}
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("unknown log level: %s", l.Level)
	}
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo // Default level
	}
	return LogLevel(l.Level)
}
