package ports

import (
	"context"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

// ConfigLoader loads application configuration
type ConfigLoader interface {
	// LoadGlobal loads the user-wide configuration, creating defaults on
	// first run
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads the per-deck configuration from dir; returns (nil, nil)
	// when no local file exists
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)
}
