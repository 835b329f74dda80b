package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/webdeck/internal/domain/entities"
)

func newTestLoader(t *testing.T) *TOMLLoader {
	t.Helper()

	return &TOMLLoader{
		globalPath: filepath.Join(t.TempDir(), "config.toml"),
		localName:  "webdeck.toml",
	}
}

func TestLoadGlobal(t *testing.T) {
	ctx := context.Background()

	t.Run("first run creates defaults", func(t *testing.T) {
		loader := newTestLoader(t)

		cfg, err := loader.LoadGlobal(ctx)

		require.NoError(t, err)
		assert.Equal(t, 9124, cfg.Stage.Port)
		assert.True(t, cfg.Browser.AutoOpen)
		assert.InDelta(t, 0.25, cfg.Zoom.Step, 1e-9)
		assert.True(t, cfg.Watcher.Enabled)
		assert.Equal(t, "info", cfg.Logging.Level)

		// The file now exists on disk for the next run.
		_, err = os.Stat(loader.globalPath)
		require.NoError(t, err)
	})

	t.Run("existing file wins over defaults", func(t *testing.T) {
		loader := newTestLoader(t)
		require.NoError(t, os.WriteFile(loader.globalPath, []byte(`
[stage]
port = 8080

[zoom]
step = 0.5
min = 0.5
max = 2.0

[watcher]
enabled = false
interval_ms = 1000
debounce_ms = 100
`), 0o644))

		cfg, err := loader.LoadGlobal(ctx)

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Stage.Port)
		assert.InDelta(t, 2.0, cfg.Zoom.Max, 1e-9)
		assert.False(t, cfg.Watcher.Enabled)
	})

	t.Run("invalid global config is rejected", func(t *testing.T) {
		loader := newTestLoader(t)
		require.NoError(t, os.WriteFile(loader.globalPath, []byte(`
[zoom]
step = -1.0
min = 0.5
max = 2.0

[watcher]
interval_ms = 200
`), 0o644))

		_, err := loader.LoadGlobal(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("malformed toml is reported", func(t *testing.T) {
		loader := newTestLoader(t)
		require.NoError(t, os.WriteFile(loader.globalPath, []byte("[stage\nport = 1"), 0o644))

		_, err := loader.LoadGlobal(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})
}

func TestLoadLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("absent file is not an error", func(t *testing.T) {
		loader := newTestLoader(t)

		cfg, err := loader.LoadLocal(ctx, t.TempDir())

		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("partial overlay loads without validation", func(t *testing.T) {
		loader := newTestLoader(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "webdeck.toml"), []byte(`
[stage]
port = 3000
`), 0o644))

		cfg, err := loader.LoadLocal(ctx, dir)

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 3000, cfg.Stage.Port)
		assert.Zero(t, cfg.Zoom.Step)
	})
}

func TestDefaultsRoundTrip(t *testing.T) {
	// CreateDefaults must write a file LoadGlobal can read back unchanged.
	loader := newTestLoader(t)
	ctx := context.Background()

	require.NoError(t, loader.CreateDefaults(ctx, loader.globalPath))

	cfg, err := loader.LoadGlobal(ctx)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestDefaultsEnvOverrides(t *testing.T) {
	t.Run("stage port", func(t *testing.T) {
		t.Setenv("WEBDECK_STAGE_PORT", "7000")
		assert.Equal(t, 7000, GetDefaultConfig().Stage.Port)
	})

	t.Run("unparseable int keeps default", func(t *testing.T) {
		t.Setenv("WEBDECK_STAGE_PORT", "not-a-port")
		assert.Equal(t, 9124, GetDefaultConfig().Stage.Port)
	})

	t.Run("auto open", func(t *testing.T) {
		t.Setenv("WEBDECK_AUTO_OPEN", "false")
		assert.False(t, GetDefaultConfig().Browser.AutoOpen)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("WEBDECK_LOG_LEVEL", "debug")
		assert.Equal(t, "debug", GetDefaultConfig().Logging.Level)
	})
}

func TestMerge(t *testing.T) {
	global := GetDefaultConfig()

	t.Run("nil local keeps global", func(t *testing.T) {
		merged := Merge(global, nil)

		assert.Equal(t, global, merged)
	})

	t.Run("local fields win", func(t *testing.T) {
		local := &entities.Config{}
		local.Stage.Port = 3000
		local.Zoom.Max = 5.0
		local.Logging.Level = "debug"

		merged := Merge(global, local)

		assert.Equal(t, 3000, merged.Stage.Port)
		assert.InDelta(t, 5.0, merged.Zoom.Max, 1e-9)
		assert.Equal(t, "debug", merged.Logging.Level)
	})

	t.Run("zero local fields keep global values", func(t *testing.T) {
		local := &entities.Config{}
		local.Stage.Port = 3000

		merged := Merge(global, local)

		assert.InDelta(t, global.Zoom.Step, merged.Zoom.Step, 1e-9)
		assert.Equal(t, global.Watcher.IntervalMs, merged.Watcher.IntervalMs)
		assert.Equal(t, global.Stage.CORSOrigins, merged.Stage.CORSOrigins)
	})

	t.Run("merge does not mutate the global", func(t *testing.T) {
		local := &entities.Config{}
		local.Stage.Port = 3000

		before := global.Stage.Port
		Merge(global, local)

		assert.Equal(t, before, global.Stage.Port)
	})
}
