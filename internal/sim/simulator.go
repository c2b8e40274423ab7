// Package sim drives a body store through fixed ticks.
//
// One tick integrates every body once, resolves collisions to a fixed point
// and clears accelerations so forces never carry over to the next tick.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/integrators"
	"github.com/san-kum/collide/internal/logging"
	"github.com/san-kum/collide/internal/metrics"
)

type Simulator struct {
	world      dynamo.World
	dt         float64
	integrator integrators.Integrator
	resolver   *collision.Resolver
	metrics    []Metric
	observers  []Observer
	logger     *log.Logger
}

func New(world dynamo.World, dt float64, integrator integrators.Integrator, resolver *collision.Resolver, logger *log.Logger) *Simulator {
	return &Simulator{
		world:      world,
		dt:         dt,
		integrator: integrator,
		resolver:   resolver,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     logging.OrDiscard(logger),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() dynamo.World { return s.world }
func (s *Simulator) Dt() float64         { return s.dt }

// Step advances bodies by one fixed tick in place.
func (s *Simulator) Step(bodies []dynamo.Body) collision.Stats {
	s.integrator.Step(bodies, s.world.Gravity, s.dt)
	st := s.resolver.Resolve(bodies, s.world.Bounds)
	for i := range bodies {
		bodies[i].Acceleration = dynamo.Vec2{}
	}
	return st
}

// Step advances bodies by one tick of length dt with semi-implicit Euler and
// the default collision policy.
func Step(bodies []dynamo.Body, world dynamo.World, dt float64) collision.Stats {
	s := New(world, dt, integrators.NewSemiImplicit(), collision.NewResolver(collision.PolicyIndependent, 0, nil), nil)
	return s.Step(bodies)
}

// Run steps bodies for cfg.Duration of simulated time, sampling total energy
// and feeding metrics and observers after every tick.
func (s *Simulator) Run(ctx context.Context, bodies []dynamo.Body, cfg Config) (*Result, error) {
	if err := s.validate(bodies, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / s.dt))
	sampleEvery := max(cfg.SampleEvery, 1)
	result := &Result{
		Times:   make([]float64, 0, steps/sampleEvery+1),
		Energy:  make([]float64, 0, steps/sampleEvery+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	initialEnergy := metrics.TotalEnergy(bodies, s.world)
	result.Times = append(result.Times, t)
	result.Energy = append(result.Energy, initialEnergy)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		st := s.Step(bodies)
		t += s.dt
		result.StepsTaken++
		result.Passes += st.Passes
		if !st.Converged {
			result.Unconverged++
		}

		if cfg.ValidateState {
			if err := dynamo.Validate(bodies); err != nil {
				result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: err.Error()})
				s.logger.Error("simulation state invalid", "step", i, "err", err)
				break
			}
		}

		for _, m := range s.metrics {
			m.Observe(bodies, st, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(bodies, st, t)
		}

		if (i+1)%sampleEvery == 0 {
			result.Times = append(result.Times, t)
			result.Energy = append(result.Energy, metrics.TotalEnergy(bodies, s.world))
		}
	}

	finalEnergy := metrics.TotalEnergy(bodies, s.world)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run finished",
		"steps", result.StepsTaken,
		"passes", result.Passes,
		"unconverged", result.Unconverged,
	)

	return result, nil
}

func (s *Simulator) validate(bodies []dynamo.Body, cfg Config) error {
	if !(s.dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", s.dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if err := s.world.Validate(); err != nil {
		return err
	}
	return dynamo.Validate(bodies)
}
