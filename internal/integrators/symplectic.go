package integrators

import "github.com/san-kum/collide/internal/dynamo"

// SemiImplicit is symplectic (semi-implicit) Euler: velocity is updated from
// acceleration first and the new velocity moves the position. Energy error
// stays bounded under constant gravity instead of growing every tick.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit {
	return &SemiImplicit{}
}

func (s *SemiImplicit) Name() string { return "symplectic" }

func (s *SemiImplicit) Step(bodies []dynamo.Body, gravity, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		applyGravity(b, gravity)
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}
