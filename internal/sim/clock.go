package sim

import (
	"math"
	"time"
)

// Clock turns real elapsed time into a number of fixed ticks. Leftover time
// smaller than one tick carries into the next call, so simulated time does
// not depend on the caller's frame rate.
type Clock struct {
	Dt float64
	// MaxCatchUp caps the ticks returned by a single Advance; 0 means no cap.
	MaxCatchUp int

	acc     float64
	dropped float64
}

func NewClock(dt float64, maxCatchUp int) *Clock {
	return &Clock{Dt: dt, MaxCatchUp: maxCatchUp}
}

// Advance adds elapsed real time and returns how many ticks are due. When
// the cap is reached the whole ticks still owed are discarded and counted in
// Dropped; the sub-tick remainder carries over as usual.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.Dt <= 0 {
		return 0
	}
	if elapsed > 0 {
		c.acc += elapsed.Seconds()
	}

	n := 0
	for c.acc >= c.Dt {
		if c.MaxCatchUp > 0 && n == c.MaxCatchUp {
			rem := math.Mod(c.acc, c.Dt)
			// a remainder within rounding of a full tick is a whole tick
			if c.Dt-rem < c.Dt*1e-9 {
				rem = 0
			}
			c.dropped += c.acc - rem
			c.acc = rem
			break
		}
		c.acc -= c.Dt
		n++
	}
	return n
}

// Dropped returns the simulated seconds discarded by the catch-up cap.
func (c *Clock) Dropped() float64 { return c.dropped }

func (c *Clock) Reset() {
	c.acc = 0
	c.dropped = 0
}
