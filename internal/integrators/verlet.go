package integrators

import "github.com/san-kum/collide/internal/dynamo"

// Verlet is velocity Verlet. Position takes the half-step acceleration term,
// velocity averages the old and new accelerations. Gravity is the only force
// the integrator sees, so both accelerations are equal and a free-falling
// body follows its parabola exactly.
type Verlet struct {
	prevAcc []dynamo.Vec2
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) ensureScratch(n int) {
	if cap(v.prevAcc) < n {
		v.prevAcc = make([]dynamo.Vec2, n)
	}
	v.prevAcc = v.prevAcc[:n]
}

func (v *Verlet) Step(bodies []dynamo.Body, gravity, dt float64) {
	v.ensureScratch(len(bodies))
	halfDt2 := 0.5 * dt * dt

	for i := range bodies {
		b := &bodies[i]
		applyGravity(b, gravity)
		v.prevAcc[i] = b.Acceleration
		b.Position = b.Position.Add(b.Velocity.Scale(dt)).Add(b.Acceleration.Scale(halfDt2))
	}

	// accelerations at the new positions: the field is uniform, so they
	// match the ones just used
	halfDt := 0.5 * dt
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(v.prevAcc[i].Add(b.Acceleration).Scale(halfDt))
	}
}
