package metrics

import (
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
)

// CollisionRate is the mean number of pairwise impulses per tick.
type CollisionRate struct {
	name    string
	sum     int
	samples int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{
		name: "collisions_per_tick",
	}
}

func (c *CollisionRate) Name() string {
	return c.name
}

func (c *CollisionRate) Observe(_ []dynamo.Body, st collision.Stats, _ float64) {
	c.sum += st.Pairwise
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *CollisionRate) Reset() {
	c.sum = 0
	c.samples = 0
}

// MeanSpeed averages |v| over every body and tick observed.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(bodies []dynamo.Body, _ collision.Stats, _ float64) {
	for _, b := range bodies {
		m.sum += b.Velocity.Length()
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
