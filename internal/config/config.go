package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies     = 60
	DefaultRadius     = 1.0
	DefaultMaxSpeed   = 6.0
	DefaultBound      = 20.0
	DefaultTickRate   = 60.0
	DefaultDuration   = 10.0
	DefaultIntegrator = "symplectic"
	DefaultPolicy     = "independent"
	DefaultGravity    = 9.81
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Bodies         int          `yaml:"bodies"`
	Seed           int64        `yaml:"seed"`
	Radius         float64      `yaml:"radius"`
	MaxSpeed       float64      `yaml:"max_speed"`
	Bounds         BoundsConfig `yaml:"bounds"`
	Gravity        float64      `yaml:"gravity"`
	UniformDensity bool         `yaml:"uniform_density"`
	TickRate       float64      `yaml:"tick_rate"`
	Duration       float64      `yaml:"duration"`
	Integrator     string       `yaml:"integrator"`
	Policy         string       `yaml:"policy"`
	MaxPasses      int          `yaml:"max_passes"`
	Scene          []BodyConfig `yaml:"scene,omitempty"`
}

type BoundsConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BodyConfig places one body explicitly. Mass 0 means unit mass, or π·r²
// when the config asks for uniform density.
type BodyConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:     DefaultBodies,
		Radius:     DefaultRadius,
		MaxSpeed:   DefaultMaxSpeed,
		Bounds:     BoundsConfig{X: DefaultBound, Y: DefaultBound},
		TickRate:   DefaultTickRate,
		Duration:   DefaultDuration,
		Integrator: DefaultIntegrator,
		Policy:     DefaultPolicy,
	}
}

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

// BodyCount is the number of bodies the config produces: the explicit scene
// when one is given, otherwise Bodies.
func (c *Config) BodyCount() int {
	if len(c.Scene) > 0 {
		return len(c.Scene)
	}
	return c.Bodies
}

// Dt is the fixed tick length in seconds.
func (c *Config) Dt() float64 {
	return 1 / c.TickRate
}

func (c *Config) World() dynamo.World {
	return dynamo.World{
		Bounds:  dynamo.Vec2{X: c.Bounds.X, Y: c.Bounds.Y},
		Gravity: c.Gravity,
	}
}

func (c *Config) CollisionPolicy() (collision.Policy, error) {
	return collision.ParsePolicy(c.Policy)
}

func (c *Config) Validate() error {
	if !(c.TickRate > 0) {
		return fmt.Errorf("%w: tick_rate must be positive, got %g", ErrInvalidConfig, c.TickRate)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.Bodies < 0 {
		return fmt.Errorf("%w: bodies must not be negative, got %d", ErrInvalidConfig, c.Bodies)
	}
	if len(c.Scene) == 0 && c.Bodies > 0 {
		if !(c.Radius > 0) {
			return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, c.Radius)
		}
		if c.Radius >= c.Bounds.X || c.Radius >= c.Bounds.Y {
			return fmt.Errorf("%w: radius %g does not fit in bounds %+v", ErrInvalidConfig, c.Radius, c.Bounds)
		}
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("%w: max_speed must not be negative, got %g", ErrInvalidConfig, c.MaxSpeed)
	}
	if c.MaxPasses < 0 {
		return fmt.Errorf("%w: max_passes must not be negative, got %d", ErrInvalidConfig, c.MaxPasses)
	}
	if err := c.World().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.CollisionPolicy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i, b := range c.Scene {
		if !(b.Radius > 0) || b.Mass < 0 {
			return fmt.Errorf("%w: scene[%d] needs a positive radius and non-negative mass", ErrInvalidConfig, i)
		}
	}
	return nil
}
