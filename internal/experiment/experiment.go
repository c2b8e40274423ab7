package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/sim"
)

// Experiment ties a validated config to a simulator and the body store it
// drives.
type Experiment struct {
	cfg        *config.Config
	simulator  *sim.Simulator
	bodies     []dynamo.Body
	randSource *rand.Rand
	logger     *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
		logger:     logger,
	}
}

// Setup validates the config, builds the simulator and generates bodies.
func (e *Experiment) Setup(registry *Registry, metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	s, err := NewSimulator(e.cfg, registry, e.logger)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}

	bodies, err := Generate(e.cfg, e.randSource)
	if err != nil {
		return err
	}

	e.simulator = s
	e.bodies = bodies
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.DefaultConfig()
	simCfg.Duration = e.cfg.Duration
	return e.simulator.Run(ctx, e.bodies, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Bodies returns the live body store.
func (e *Experiment) Bodies() []dynamo.Body {
	return e.bodies
}

// NewSimulator builds a simulator for cfg without generating bodies.
func NewSimulator(cfg *config.Config, registry *Registry, logger *log.Logger) (*sim.Simulator, error) {
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.CollisionPolicy()
	if err != nil {
		return nil, err
	}
	resolver := collision.NewResolver(policy, cfg.MaxPasses, logger)
	return sim.New(cfg.World(), cfg.Dt(), integ, resolver, logger), nil
}

// SceneFunc adapts cfg into a per-seed scene builder for sim.Ensemble.
func SceneFunc(cfg *config.Config) sim.SceneFunc {
	return func(seed int64) ([]dynamo.Body, error) {
		return Generate(cfg, rand.New(rand.NewSource(seed)))
	}
}
