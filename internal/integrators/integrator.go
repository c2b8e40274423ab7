// Package integrators advances a body store by one fixed timestep.
package integrators

import "github.com/san-kum/collide/internal/dynamo"

// Integrator applies gravity and moves every body forward by dt.
//
// Implementations mutate bodies in place and must not touch mass or radius.
// Acceleration is left as computed; the tick driver zeroes it once the tick
// is complete.
type Integrator interface {
	Name() string
	Step(bodies []dynamo.Body, gravity, dt float64)
}

func applyGravity(b *dynamo.Body, gravity float64) {
	b.Acceleration.Y -= gravity
}
