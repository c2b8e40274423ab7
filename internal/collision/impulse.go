package collision

import "github.com/san-kum/collide/internal/dynamo"

// reflect negates each velocity component that carries the body into a wall
// it touches or crosses. The four walls are checked independently.
func reflect(b *dynamo.Body, bounds dynamo.Vec2) bool {
	bounced := false
	r := b.Radius()

	if b.Velocity.Y > 0 && b.Position.Y+r >= bounds.Y {
		b.Velocity.Y = -b.Velocity.Y
		bounced = true
	}
	if b.Velocity.Y < 0 && b.Position.Y-r <= -bounds.Y {
		b.Velocity.Y = -b.Velocity.Y
		bounced = true
	}
	if b.Velocity.X > 0 && b.Position.X+r >= bounds.X {
		b.Velocity.X = -b.Velocity.X
		bounced = true
	}
	if b.Velocity.X < 0 && b.Position.X-r <= -bounds.X {
		b.Velocity.X = -b.Velocity.X
		bounced = true
	}

	return bounced
}

// Overlapping reports whether two circles touch or intersect.
func Overlapping(a, b dynamo.Body) bool {
	rs := a.Radius() + b.Radius()
	return b.Position.Sub(a.Position).LengthSquared() <= rs*rs
}

// Approaching reports whether a and b are closing along the line between
// their centres.
func Approaching(a, b dynamo.Body) bool {
	return b.Position.Sub(a.Position).Dot(a.Velocity.Sub(b.Velocity)) > 0
}

// collide applies the elastic impulse to an overlapping, approaching pair.
// Both new velocities are computed from the pre-collision values before
// either body is written.
func collide(a, b *dynamo.Body) (hit, degenerate bool) {
	if !Overlapping(*a, *b) || !Approaching(*a, *b) {
		return false, false
	}

	d := a.Position.Sub(b.Position)
	distSq := d.LengthSquared()
	if distSq < MinSeparationSq {
		return false, true
	}

	va, vb := Elastic(*a, *b)
	a.Velocity = va
	b.Velocity = vb
	return true, false
}

// Elastic returns the post-collision velocities of a and b for a perfectly
// elastic impact along the line of centres. Momentum and kinetic energy are
// conserved for any positive masses. The centres must not coincide.
func Elastic(a, b dynamo.Body) (dynamo.Vec2, dynamo.Vec2) {
	ma, mb := a.Mass(), b.Mass()
	total := ma + mb

	dab := a.Position.Sub(b.Position)
	dba := b.Position.Sub(a.Position)
	distSq := dab.LengthSquared()

	ka := (2 * mb / total) * a.Velocity.Sub(b.Velocity).Dot(dab) / distSq
	kb := (2 * ma / total) * b.Velocity.Sub(a.Velocity).Dot(dba) / distSq

	return a.Velocity.Sub(dab.Scale(ka)), b.Velocity.Sub(dba.Scale(kb))
}
