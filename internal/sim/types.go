package sim

import (
	"fmt"

	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
)

// Metric accumulates a diagnostic value over the ticks of a run.
type Metric interface {
	Name() string
	Observe(bodies []dynamo.Body, st collision.Stats, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick. Bodies must be treated as read-only.
type Observer interface {
	OnStep(bodies []dynamo.Body, st collision.Stats, t float64)
}

type Config struct {
	Duration      float64
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      10.0,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Times       []float64
	Energy      []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Passes      int
	Unconverged int
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
