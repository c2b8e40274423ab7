package integrators

import "github.com/san-kum/collide/internal/dynamo"

// Euler is explicit forward Euler. Position uses the velocity from the start
// of the tick, so a falling body gains energy every step. Only kept for
// comparison runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(bodies []dynamo.Body, gravity, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		applyGravity(b, gravity)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	}
}
