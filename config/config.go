// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate when a loaded value cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds all game configuration parameters.
type Config struct {
	Environment string          `yaml:"environment"`
	Screen      ScreenConfig    `yaml:"screen"`
	Loop        LoopConfig      `yaml:"loop"`
	Assets      AssetsConfig    `yaml:"assets"`
	Ship        ShipConfig      `yaml:"ship"`
	Planet      PlanetConfig    `yaml:"planet"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	TargetFPS  int      `yaml:"target_fps"`
	Title      string   `yaml:"title"`
	Background [3]uint8 `yaml:"background"` // RGB fill color
}

// LoopConfig holds game loop tuning.
type LoopConfig struct {
	DeltaDivisorMS  float64 `yaml:"delta_divisor_ms"`  // Frame time is divided by this to get delta time
	LowFPSThreshold float64 `yaml:"low_fps_threshold"` // Delta time above this logs a warning
	DebugKey        string  `yaml:"debug_key"`
}

// AssetSpec binds a logical sprite name to a file.
type AssetSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// AssetsConfig holds the sprite table definition.
type AssetsConfig struct {
	Dir     string      `yaml:"dir"`
	Scale   float64     `yaml:"scale"` // Pre-scale applied at load (station environment)
	Sprites []AssetSpec `yaml:"sprites"`
}

// ShipConfig holds ship physics and control parameters.
type ShipConfig struct {
	Sprite               string  `yaml:"sprite"`
	X                    float64 `yaml:"x"`
	Y                    float64 `yaml:"y"`
	CorrectionAngle      float64 `yaml:"correction_angle"` // Degrees so that angle 0 faces up
	Speed                float64 `yaml:"speed"`
	Acceleration         float64 `yaml:"acceleration"`
	DisabledAcceleration float64 `yaml:"disabled_acceleration"`
	Decay                float64 `yaml:"decay"`
	DisabledDecay        float64 `yaml:"disabled_decay"`
	DisabledTime         float64 `yaml:"disabled_time"` // Seconds
	RotationSpeed        float64 `yaml:"rotation_speed"` // Degrees per frame
	ThrustKey            string  `yaml:"thrust_key"`
	Health               int     `yaml:"health"`
	HotbarSlots          int     `yaml:"hotbar_slots"`
}

// PlanetConfig holds the planet environment's scenery.
type PlanetConfig struct {
	Sprite     string  `yaml:"sprite"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Scale      float64 `yaml:"scale"`
	Angle      float64 `yaml:"angle"`
	SpinRate   float64 `yaml:"spin_rate"`   // Degrees per frame
	AssetScale float64 `yaml:"asset_scale"` // Pre-scale applied at load (planet environment)
}

// TelemetryConfig holds perf collection parameters.
type TelemetryConfig struct {
	PerfWindow  int    `yaml:"perf_window"`  // Frames averaged per perf sample
	LogInterval int    `yaml:"log_interval"` // Frames between perf log lines
	HistoryDB   string `yaml:"history_db"`   // SQLite run history (empty = disabled)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background   color.RGBA
	DeltaDivisor time.Duration
	DisabledTime time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first value that cannot drive the game.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps %d", ErrInvalid, c.Screen.TargetFPS)
	case c.Loop.DeltaDivisorMS <= 0:
		return fmt.Errorf("%w: delta_divisor_ms %v", ErrInvalid, c.Loop.DeltaDivisorMS)
	case c.Ship.Speed < 0:
		return fmt.Errorf("%w: ship speed %v", ErrInvalid, c.Ship.Speed)
	case c.Ship.HotbarSlots <= 0:
		return fmt.Errorf("%w: hotbar_slots %d", ErrInvalid, c.Ship.HotbarSlots)
	case c.Environment != "station" && c.Environment != "planet":
		return fmt.Errorf("%w: environment %q", ErrInvalid, c.Environment)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	bg := c.Screen.Background
	c.Derived.Background = color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}
	c.Derived.DeltaDivisor = time.Duration(c.Loop.DeltaDivisorMS * float64(time.Millisecond))
	c.Derived.DisabledTime = time.Duration(c.Ship.DisabledTime * float64(time.Second))

	if c.Assets.Scale == 0 {
		c.Assets.Scale = 1
	}
	if c.Planet.AssetScale == 0 {
		c.Planet.AssetScale = 1
	}
	if c.Planet.Scale == 0 {
		c.Planet.Scale = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = c.Screen.TargetFPS
	}
}

// AssetScale returns the load-time pre-scale for the configured environment.
func (c *Config) AssetScale() float64 {
	if c.Environment == "planet" {
		return c.Planet.AssetScale
	}
	return c.Assets.Scale
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
