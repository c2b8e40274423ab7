// Package dynamo provides the core simulation primitives for colliding circles.
//
// The package defines the plain data the rest of the simulator mutates:
//
//   - [Vec2]: 2D vector value type
//   - [Body]: circular body with kinematic state, mass and radius
//   - [World]: reflective bounds and the optional gravity constant
//
// A body store is just a []Body. It is created once, owned by the caller and
// mutated in place by the integrators and the collision resolver.
//
// # Example
//
//	b, err := dynamo.NewBody(dynamo.Vec2{X: -0.4}, dynamo.Vec2{X: 5}, 0.5, 1)
//	world := dynamo.World{Bounds: dynamo.Vec2{X: 20, Y: 20}}
//	sim.Step([]dynamo.Body{b}, world, 1.0/60)
//
// # Thread Safety
//
// Nothing in this package synchronises access. A body store must only be
// touched by the goroutine stepping it.
package dynamo
