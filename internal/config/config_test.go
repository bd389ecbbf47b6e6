package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30.0, cfg.Carousel.SwipeThreshold)
	assert.Equal(t, 300.0, cfg.Carousel.VelocityThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Gesture.VelocityWindow)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[carousel]
swipe_threshold = 45.0
velocity_scale = 0.5

[spring]
tension = 180.0
fps = 120

[gesture]
velocity_window = "80ms"

[ui]
catalog_path = "  /tmp/steps.toml  "

[log]
level = "DEBUG"
`), 0o644))
	t.Setenv("ONBOARD_CAROUSEL_VELOCITY_THRESHOLD", "450")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.Carousel.SwipeThreshold)
	assert.Equal(t, 450.0, cfg.Carousel.VelocityThreshold)
	assert.Equal(t, 0.5, cfg.Carousel.VelocityScale)
	assert.Equal(t, 180.0, cfg.Spring.Tension)
	assert.Equal(t, 30.0, cfg.Spring.Friction, "unset keys keep defaults")
	assert.Equal(t, 120, cfg.Spring.FPS)
	assert.Equal(t, 80*time.Millisecond, cfg.Gesture.VelocityWindow)
	assert.Equal(t, "/tmp/steps.toml", cfg.UI.CatalogPath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadUsesEnvConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.toml")
	require.NoError(t, os.WriteFile(path, []byte("[carousel]\nswipe_threshold = 12.0\n"), 0o644))
	t.Setenv("ONBOARD_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Carousel.SwipeThreshold)
	assert.Equal(t, path, Path(""))
	assert.Equal(t, "/x.toml", Path("/x.toml"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[carousel\nswipe_threshold = "), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestNormalizeReplacesInvalidValues(t *testing.T) {
	c := normalize(Config{
		Carousel: CarouselConfig{SwipeThreshold: -1, VelocityThreshold: 0, VelocityScale: -3},
		Spring:   SpringConfig{FPS: 1000},
		Gesture:  GestureConfig{Density: 0},
		UI:       UIConfig{CellWidth: -8},
	})
	def := Default()
	assert.Equal(t, def.Carousel, c.Carousel)
	assert.Equal(t, def.Spring.FPS, c.Spring.FPS)
	assert.Equal(t, def.Gesture.Density, c.Gesture.Density)
	assert.Equal(t, def.UI.CellWidth, c.UI.CellWidth)
	assert.Equal(t, def.UI.CellHeight, c.UI.CellHeight)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.Carousel.SwipeThreshold = 42
	want.Gesture.VelocityWindow = 150 * time.Millisecond
	want.Log.Path = "/var/tmp/onboard.log"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchRequiresExistingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "none.toml"), func(Config) {}, nil)
	require.Error(t, err)
}
