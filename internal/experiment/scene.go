package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
)

// Generate builds the initial body store for cfg. An explicit scene wins;
// otherwise cfg.Bodies bodies are placed uniformly inside the bounds (inset
// by the radius) with velocity components uniform in ±MaxSpeed.
func Generate(cfg *config.Config, rng *rand.Rand) ([]dynamo.Body, error) {
	if len(cfg.Scene) > 0 {
		return fromScene(cfg)
	}

	bodies := make([]dynamo.Body, 0, cfg.Bodies)
	r := cfg.Radius
	for i := 0; i < cfg.Bodies; i++ {
		pos := dynamo.Vec2{
			X: symmetric(rng) * (cfg.Bounds.X - r),
			Y: symmetric(rng) * (cfg.Bounds.Y - r),
		}
		vel := dynamo.Vec2{
			X: symmetric(rng) * cfg.MaxSpeed,
			Y: symmetric(rng) * cfg.MaxSpeed,
		}

		b, err := newBody(pos, vel, r, 0, cfg.UniformDensity)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func fromScene(cfg *config.Config) ([]dynamo.Body, error) {
	bodies := make([]dynamo.Body, 0, len(cfg.Scene))
	for i, bc := range cfg.Scene {
		b, err := newBody(dynamo.Vec2{X: bc.X, Y: bc.Y}, dynamo.Vec2{X: bc.VX, Y: bc.VY}, bc.Radius, bc.Mass, cfg.UniformDensity)
		if err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func newBody(pos, vel dynamo.Vec2, radius, mass float64, uniform bool) (dynamo.Body, error) {
	switch {
	case mass > 0:
		return dynamo.NewBody(pos, vel, radius, mass)
	case uniform:
		return dynamo.NewUniformBody(pos, vel, radius)
	default:
		return dynamo.NewBody(pos, vel, radius, 1)
	}
}

// symmetric returns a uniform sample in [-1, 1).
func symmetric(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
