package config

import (
	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// Merge overlays a local config on top of a global one, field by field. Zero
// values in the local config mean "not set" and keep the global value; local
// may be nil when no per-deck file exists.
func Merge(global, local *entities.Config) *entities.Config {
	merged := *global
	if local == nil {
		return &merged
	}

	if local.Stage.Host != "" {
		merged.Stage.Host = local.Stage.Host
	}
	if local.Stage.Port != 0 {
		merged.Stage.Port = local.Stage.Port
	}
	if len(local.Stage.CORSOrigins) > 0 {
		merged.Stage.CORSOrigins = local.Stage.CORSOrigins
	}

	if local.Zoom.Step != 0 {
		merged.Zoom.Step = local.Zoom.Step
	}
	if local.Zoom.Min != 0 {
		merged.Zoom.Min = local.Zoom.Min
	}
	if local.Zoom.Max != 0 {
		merged.Zoom.Max = local.Zoom.Max
	}

	if local.Watcher.IntervalMs != 0 {
		merged.Watcher.IntervalMs = local.Watcher.IntervalMs
	}
	if local.Watcher.DebounceMs != 0 {
		merged.Watcher.DebounceMs = local.Watcher.DebounceMs
	}

	if local.Logging.Level != "" {
		merged.Logging.Level = local.Logging.Level
	}

	return &merged
}
