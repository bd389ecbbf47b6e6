package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Carousel CarouselConfig
	Spring   SpringConfig
	Gesture  GestureConfig
	UI       UIConfig
	Log      LogConfig
	Prefs    PrefsConfig
}

// CarouselConfig holds the swipe decision constants.
type CarouselConfig struct {
	SwipeThreshold    float64 `mapstructure:"swipe_threshold"`
	VelocityThreshold float64 `mapstructure:"velocity_threshold"`
	VelocityScale     float64 `mapstructure:"velocity_scale"`
}

// SpringConfig holds the settle animation constants.
type SpringConfig struct {
	Tension          float64
	Friction         float64
	Mass             float64
	FPS              int     `mapstructure:"fps"`
	RestDisplacement float64 `mapstructure:"rest_displacement"`
}

// GestureConfig holds pan recognizer settings.
type GestureConfig struct {
	Density        float64
	TouchSlop      float64       `mapstructure:"touch_slop"`
	VelocityWindow time.Duration `mapstructure:"velocity_window"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CellWidth   float64 `mapstructure:"cell_width"`
	CellHeight  float64 `mapstructure:"cell_height"`
	CatalogPath string  `mapstructure:"catalog_path"`
}

// LogConfig holds logger settings. An empty path disables logging.
type LogConfig struct {
	Level string
	Path  string
}

// PrefsConfig locates the onboarding marker. Empty means the user config dir.
type PrefsConfig struct {
	Dir string
}

const envPrefix = "ONBOARD"

func newViper(path string) *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("carousel.swipe_threshold", 30.0)
	v.SetDefault("carousel.velocity_threshold", 300.0)
	v.SetDefault("carousel.velocity_scale", 1.0)
	v.SetDefault("spring.tension", 300.0)
	v.SetDefault("spring.friction", 30.0)
	v.SetDefault("spring.mass", 1.0)
	v.SetDefault("spring.fps", 60)
	v.SetDefault("spring.rest_displacement", 0.5)
	v.SetDefault("gesture.density", 1.0)
	v.SetDefault("gesture.touch_slop", 8.0)
	v.SetDefault("gesture.velocity_window", 100*time.Millisecond)
	v.SetDefault("ui.cell_width", 8.0)
	v.SetDefault("ui.cell_height", 16.0)
	v.SetDefault("ui.catalog_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("prefs.dir", "")

	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Dir is the default configuration directory.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "onboard")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "onboard")
}

// Path resolves the config file location: the explicit path, then
// $ONBOARD_CONFIG, then config.toml in Dir.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// ONBOARD_. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	// An explicit file path that does not exist surfaces as a PathError.
	return errors.Is(err, fs.ErrNotExist)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return defaults()
}

func normalize(c Config) Config {
	def := defaults()
	if c.Carousel.SwipeThreshold <= 0 {
		c.Carousel.SwipeThreshold = def.Carousel.SwipeThreshold
	}
	if c.Carousel.VelocityThreshold <= 0 {
		c.Carousel.VelocityThreshold = def.Carousel.VelocityThreshold
	}
	if c.Carousel.VelocityScale < 0 {
		c.Carousel.VelocityScale = def.Carousel.VelocityScale
	}
	if c.Spring.FPS < 10 || c.Spring.FPS > 240 {
		c.Spring.FPS = def.Spring.FPS
	}
	if c.Gesture.Density <= 0 {
		c.Gesture.Density = def.Gesture.Density
	}
	if c.UI.CellWidth <= 0 {
		c.UI.CellWidth = def.UI.CellWidth
	}
	if c.UI.CellHeight <= 0 {
		c.UI.CellHeight = def.UI.CellHeight
	}
	c.UI.CatalogPath = strings.TrimSpace(c.UI.CatalogPath)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	return c
}

func defaults() Config {
	return Config{
		Carousel: CarouselConfig{SwipeThreshold: 30, VelocityThreshold: 300, VelocityScale: 1},
		Spring:   SpringConfig{Tension: 300, Friction: 30, Mass: 1, FPS: 60, RestDisplacement: 0.5},
		Gesture:  GestureConfig{Density: 1, TouchSlop: 8, VelocityWindow: 100 * time.Millisecond},
		UI:       UIConfig{CellWidth: 8, CellHeight: 16},
		Log:      LogConfig{Level: "info"},
	}
}

// Save writes the provided config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("carousel.swipe_threshold", cfg.Carousel.SwipeThreshold)
	v.Set("carousel.velocity_threshold", cfg.Carousel.VelocityThreshold)
	v.Set("carousel.velocity_scale", cfg.Carousel.VelocityScale)
	v.Set("spring.tension", cfg.Spring.Tension)
	v.Set("spring.friction", cfg.Spring.Friction)
	v.Set("spring.mass", cfg.Spring.Mass)
	v.Set("spring.fps", cfg.Spring.FPS)
	v.Set("spring.rest_displacement", cfg.Spring.RestDisplacement)
	v.Set("gesture.density", cfg.Gesture.Density)
	v.Set("gesture.touch_slop", cfg.Gesture.TouchSlop)
	v.Set("gesture.velocity_window", cfg.Gesture.VelocityWindow.String())
	v.Set("ui.cell_width", cfg.UI.CellWidth)
	v.Set("ui.cell_height", cfg.UI.CellHeight)
	v.Set("ui.catalog_path", cfg.UI.CatalogPath)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("prefs.dir", cfg.Prefs.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch reloads the config at path whenever the file changes and passes the
// result to onChange. Reload failures go to onErr. onChange runs on the
// watcher goroutine.
func Watch(path string, onChange func(Config), onErr func(error)) error {
	path = Path(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(ev fsnotify.Event) {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			return
		}
		c, err := decode(v)
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		onChange(c)
	})
	v.WatchConfig()
	return nil
}
