// Package metrics computes diagnostic quantities from a body store.
//
// Nothing here mutates bodies; values are for display and reporting only.
package metrics

import (
	"math"

	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
)

// Kinetic returns 0.5·m·|v|².
func Kinetic(b dynamo.Body) float64 {
	return 0.5 * b.Mass() * b.Velocity.LengthSquared()
}

// Potential returns the gravitational potential energy measured from the
// floor of the world (y = -Bounds.Y). Zero when gravity is disabled.
func Potential(b dynamo.Body, w dynamo.World) float64 {
	if w.Gravity == 0 {
		return 0
	}
	return b.Mass() * w.Gravity * (b.Position.Y + w.Bounds.Y)
}

// BodyEnergy is the mechanical energy of a single body.
func BodyEnergy(b dynamo.Body, w dynamo.World) float64 {
	return Kinetic(b) + Potential(b, w)
}

// TotalEnergy sums BodyEnergy over the store.
func TotalEnergy(bodies []dynamo.Body, w dynamo.World) float64 {
	total := 0.0
	for _, b := range bodies {
		total += BodyEnergy(b, w)
	}
	return total
}

// Momentum returns Σ m·v.
func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass()))
	}
	return p
}

// EnergyDrift tracks the largest relative deviation of total energy from the
// first observed value.
type EnergyDrift struct {
	name          string
	world         dynamo.World
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(w dynamo.World) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		world: w,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamo.Body, _ collision.Stats, _ float64) {
	energy := TotalEnergy(bodies, e.world)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
