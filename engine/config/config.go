package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"gopkg.in/yaml.v3"
)

// Validation errors returned by Config.Validate, wrapped with the offending field.
var (
	ErrInvalidWindow   = errors.New("invalid window configuration")
	ErrInvalidSpeed    = errors.New("invalid viewer speed")
	ErrInvalidMode     = errors.New("invalid initial mode")
	ErrInvalidKey      = errors.New("invalid toggle key")
	ErrInvalidJoystick = errors.New("invalid joystick layout")
	ErrInvalidOrbit    = errors.New("invalid orbit configuration")
	ErrInvalidRenderer = errors.New("invalid renderer configuration")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the viewer configuration file.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Joystick  JoystickConfig  `yaml:"joystick"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Log       LogConfig       `yaml:"log"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type ViewerConfig struct {
	MoveSpeed   float32 `yaml:"move_speed"`
	TurnSpeed   float32 `yaml:"turn_speed"`
	InitialMode string  `yaml:"initial_mode"`
	ToggleKey   string  `yaml:"toggle_key"`
}

type JoystickConfig struct {
	Radius float32 `yaml:"radius"`
	Size   float32 `yaml:"size"`
	Margin float32 `yaml:"margin"`
}

type OrbitConfig struct {
	Target       [3]float32 `yaml:"target"`
	Distance     float32    `yaml:"distance"`
	MinRadius    float32    `yaml:"min_radius"`
	MaxRadius    float32    `yaml:"max_radius"`
	Damping      float32    `yaml:"damping"`
	RotateSpeed  float32    `yaml:"rotate_speed"`
	ZoomSpeed    float32    `yaml:"zoom_speed"`
	MinElevation float32    `yaml:"min_elevation"`
	MaxElevation float32    `yaml:"max_elevation"`
}

type RendererConfig struct {
	// PresentMode is "fifo", "mailbox" or "immediate".
	PresentMode string `yaml:"present_mode"`

	// ClearColor is RGBA in [0, 1].
	ClearColor [4]float64 `yaml:"clear_color"`

	// GridHalf is the number of reference grid lines on each side of the origin.
	GridHalf int `yaml:"grid_half"`

	GridSpacing float32 `yaml:"grid_spacing"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type ProfilingConfig struct {
	Enabled  bool `yaml:"enabled"`
	Interval int  `yaml:"interval_ms"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "oxy-viewer", Width: 1280, Height: 720},
		Viewer: ViewerConfig{
			MoveSpeed:   viewer.DefaultMoveSpeed,
			TurnSpeed:   viewer.DefaultTurnSpeed,
			InitialMode: viewer.ModeOrbit.String(),
			ToggleKey:   "m",
		},
		Joystick: JoystickConfig{Radius: 40, Size: 120, Margin: 40},
		Orbit: OrbitConfig{
			Target:       [3]float32{0, 0.5, 0},
			Distance:     5,
			MinRadius:    0.1,
			MaxRadius:    1000,
			Damping:      0.1,
			RotateSpeed:  0.005,
			ZoomSpeed:    0.5,
			MinElevation: -1.56,
			MaxElevation: 1.56,
		},
		Renderer: RendererConfig{
			PresentMode: "fifo",
			ClearColor:  [4]float64{0.1, 0.1, 0.12, 1},
			GridHalf:    20,
			GridSpacing: 1,
		},
		Log:       LogConfig{Level: "info", Encoding: "json"},
		Profiling: ProfilingConfig{Enabled: false, Interval: 1000},
	}
}

// Load reads and parses a YAML configuration file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Config: the parsed configuration, with defaults filled in
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration onto the defaults. Keys left out of the document keep their
// default values; explicit values, zero included, replace them. An empty string falls back to the
// default for the name-valued fields, which have no meaningful empty setting.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillEmptyNames(Default())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillEmptyNames(d Config) {
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Viewer.InitialMode = common.Coalesce(c.Viewer.InitialMode, d.Viewer.InitialMode)
	c.Viewer.ToggleKey = common.Coalesce(c.Viewer.ToggleKey, d.Viewer.ToggleKey)
	c.Renderer.PresentMode = common.Coalesce(c.Renderer.PresentMode, d.Renderer.PresentMode)
	c.Log.Level = common.Coalesce(c.Log.Level, d.Log.Level)
	c.Log.Encoding = common.Coalesce(c.Log.Encoding, d.Log.Encoding)
}

// Validate checks every section and returns the first problem found.
//
// Returns:
//   - error: a wrapped sentinel error, or nil
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Viewer.MoveSpeed <= 0 {
		return fmt.Errorf("%w: move_speed %v", ErrInvalidSpeed, c.Viewer.MoveSpeed)
	}
	if c.Viewer.TurnSpeed <= 0 {
		return fmt.Errorf("%w: turn_speed %v", ErrInvalidSpeed, c.Viewer.TurnSpeed)
	}
	if _, err := c.Viewer.Mode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMode, err)
	}
	if _, err := c.Viewer.Key(); err != nil {
		return err
	}
	if c.Joystick.Radius <= 0 || c.Joystick.Size <= 0 || c.Joystick.Margin < 0 {
		return fmt.Errorf("%w: radius %v size %v margin %v",
			ErrInvalidJoystick, c.Joystick.Radius, c.Joystick.Size, c.Joystick.Margin)
	}
	if c.Orbit.MinRadius <= 0 || c.Orbit.MaxRadius < c.Orbit.MinRadius {
		return fmt.Errorf("%w: radius bounds [%v, %v]", ErrInvalidOrbit, c.Orbit.MinRadius, c.Orbit.MaxRadius)
	}
	if c.Orbit.MinElevation > c.Orbit.MaxElevation {
		return fmt.Errorf("%w: elevation bounds [%v, %v]", ErrInvalidOrbit, c.Orbit.MinElevation, c.Orbit.MaxElevation)
	}
	if c.Orbit.Damping < 0 || c.Orbit.Damping > 1 {
		return fmt.Errorf("%w: damping %v", ErrInvalidOrbit, c.Orbit.Damping)
	}
	switch c.Renderer.PresentMode {
	case "fifo", "mailbox", "immediate":
	default:
		return fmt.Errorf("%w: present_mode %q", ErrInvalidRenderer, c.Renderer.PresentMode)
	}
	for _, ch := range c.Renderer.ClearColor {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("%w: clear_color %v", ErrInvalidRenderer, c.Renderer.ClearColor)
		}
	}
	if c.Renderer.GridHalf <= 0 || c.Renderer.GridSpacing <= 0 {
		return fmt.Errorf("%w: grid %d x %v", ErrInvalidRenderer, c.Renderer.GridHalf, c.Renderer.GridSpacing)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}
	return nil
}

// Mode returns the parsed initial mode.
//
// Returns:
//   - viewer.Mode: the mode
//   - error: error if the name is unknown
func (v ViewerConfig) Mode() (viewer.Mode, error) {
	return viewer.ParseMode(v.InitialMode)
}

// Key returns the key code of the mode toggle key.
//
// Returns:
//   - uint32: the key code
//   - error: ErrInvalidKey if the name is unknown
func (v ViewerConfig) Key() (uint32, error) {
	code, ok := common.KeyCode(v.ToggleKey)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, v.ToggleKey)
	}
	return code, nil
}

// Logger returns the logger options for this configuration.
func (l LogConfig) Logger() logger.Options {
	return logger.Options{Level: l.Level, Encoding: l.Encoding}
}
