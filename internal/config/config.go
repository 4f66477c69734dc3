package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/starfield/internal/starfield"
	"github.com/san-kum/starfield/internal/viz"
)

const (
	DefaultWidth   = starfield.DefaultWidth
	DefaultHeight  = starfield.DefaultHeight
	DefaultDensity = starfield.DefaultDensity
	DefaultFrames  = starfield.DefaultFrames
	DefaultDelay   = 0.1
	DefaultDX      = 1
	DefaultDY      = 1
	DefaultDisplay = "ansi"
	DefaultTheme   = "mono"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Width     int             `yaml:"width"`
	Height    int             `yaml:"height"`
	Density   float64         `yaml:"density"`
	Frames    int             `yaml:"frames"`
	Delay     float64         `yaml:"delay"`
	Seed      int64           `yaml:"seed"`
	Direction DirectionConfig `yaml:"direction"`
	Display   string          `yaml:"display"`
	Theme     string          `yaml:"theme"`
}

type DirectionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Density:   DefaultDensity,
		Frames:    DefaultFrames,
		Delay:     DefaultDelay,
		Direction: DirectionConfig{X: DefaultDX, Y: DefaultDY},
		Display:   DefaultDisplay,
		Theme:     DefaultTheme,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Density < 0 || c.Density > 1 || math.IsNaN(c.Density) {
		return fmt.Errorf("%w: density %g", ErrInvalidConfig, c.Density)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay %g", ErrInvalidConfig, c.Delay)
	}
	switch c.Display {
	case "ansi", "tcell", "plain":
	default:
		return fmt.Errorf("%w: display %q", ErrInvalidConfig, c.Display)
	}
	if !slices.Contains(viz.ThemeNames(), c.Theme) {
		return fmt.Errorf("%w: theme %q (available: %v)", ErrInvalidConfig, c.Theme, viz.ThemeNames())
	}
	return nil
}

func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

// Options maps the config onto Screen options. Display and sleeper are
// left to the caller.
func (c *Config) Options() []starfield.Option {
	return []starfield.Option{
		starfield.WithSize(c.Width, c.Height),
		starfield.WithDensity(c.Density),
		starfield.WithFrames(c.Frames),
		starfield.WithDelay(c.DelayDuration()),
		starfield.WithDirection(starfield.NewPoint(c.Direction.X, c.Direction.Y)),
		starfield.WithRand(starfield.NewRand(c.Seed)),
	}
}
