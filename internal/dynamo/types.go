package dynamo

import (
	"fmt"
	"math"
)

// Body is a circular point mass. Radius doubles as the collision boundary.
//
// Mass and radius are fixed at construction; only Position, Velocity and
// Acceleration change while simulating.
type Body struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2

	mass   float64
	radius float64
}

// NewBody returns a body with the given kinematic state, radius and mass.
func NewBody(pos, vel Vec2, radius, mass float64) (Body, error) {
	if !(radius > 0) || !(mass > 0) || !isFinite(radius) || !isFinite(mass) {
		return Body{}, fmt.Errorf("radius=%g mass=%g: %w", radius, mass, ErrInvalidBody)
	}
	return Body{Position: pos, Velocity: vel, mass: mass, radius: radius}, nil
}

// NewUniformBody returns a body of unit thickness and uniform density, so its
// mass is the disc area π·r².
func NewUniformBody(pos, vel Vec2, radius float64) (Body, error) {
	return NewBody(pos, vel, radius, math.Pi*radius*radius)
}

func (b Body) Mass() float64   { return b.mass }
func (b Body) Radius() float64 { return b.radius }

// IsValid reports whether the kinematic state is finite.
func (b Body) IsValid() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite() && b.Acceleration.IsFinite()
}

// World holds the run-wide constants: the reflective box [-Bounds.X, Bounds.X]
// × [-Bounds.Y, Bounds.Y] and a downward gravity scalar (0 disables it).
type World struct {
	Bounds  Vec2
	Gravity float64
}

func (w World) Validate() error {
	if !(w.Bounds.X > 0) || !(w.Bounds.Y > 0) || !w.Bounds.IsFinite() {
		return fmt.Errorf("bounds=%+v: %w", w.Bounds, ErrInvalidWorld)
	}
	if w.Gravity < 0 || !isFinite(w.Gravity) {
		return fmt.Errorf("gravity=%g: %w", w.Gravity, ErrInvalidWorld)
	}
	return nil
}

// Validate checks every body in the store and returns the first failure
// wrapped in a *BodyError.
func Validate(bodies []Body) error {
	for i, b := range bodies {
		if !(b.radius > 0) || !(b.mass > 0) {
			return &BodyError{Index: i, Wrapped: ErrInvalidBody}
		}
		if !b.IsValid() {
			return &BodyError{Index: i, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

// Clone returns an independent copy of a body store.
func Clone(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}
