package metrics

import (
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
)

// Convergence is the fraction of ticks whose collision loop settled before
// the pass cap.
type Convergence struct {
	name       string
	violations int
	samples    int
}

func NewConvergence() *Convergence {
	return &Convergence{
		name: "convergence",
	}
}

func (c *Convergence) Name() string {
	return c.name
}

func (c *Convergence) Observe(_ []dynamo.Body, st collision.Stats, _ float64) {
	c.samples++
	if !st.Converged {
		c.violations++
	}
}

func (c *Convergence) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Convergence) Reset() {
	c.violations = 0
	c.samples = 0
}

// PassLoad records the most resolver passes any tick needed.
type PassLoad struct {
	name string
	max  int
}

func NewPassLoad() *PassLoad {
	return &PassLoad{name: "max_passes"}
}

func (p *PassLoad) Name() string { return p.name }

func (p *PassLoad) Observe(_ []dynamo.Body, st collision.Stats, _ float64) {
	p.max = max(p.max, st.Passes)
}

func (p *PassLoad) Value() float64 { return float64(p.max) }

func (p *PassLoad) Reset() { p.max = 0 }
