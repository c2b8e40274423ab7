// Package collision turns wall hits and overlapping, approaching circle pairs
// into elastic velocity changes.
//
// Positions are never corrected; a body left overlapping after an impulse is
// moving apart and separates over the following ticks.
package collision

import (
	"github.com/charmbracelet/log"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/logging"
)

const (
	DefaultMinPasses  = 8
	DefaultPassFactor = 4

	// MinSeparationSq is the smallest squared centre distance the impulse
	// formula divides by.
	MinSeparationSq = 1e-300
)

// PassStats counts the corrections made by a single pass.
type PassStats struct {
	Boundary   int
	Pairwise   int
	Degenerate int
}

// Changed reports whether the pass corrected any velocity.
func (p PassStats) Changed() bool {
	return p.Boundary > 0 || p.Pairwise > 0
}

// Stats summarises one call to Resolve.
type Stats struct {
	Passes     int
	Boundary   int
	Pairwise   int
	Degenerate int
	Converged  bool
}

// Resolver runs collision passes over a body store until a pass finds
// nothing to correct. A Resolver keeps scratch space between calls and must
// not be shared between goroutines.
type Resolver struct {
	Policy    Policy
	MaxPasses int

	logger    *log.Logger
	corrected []bool
}

func NewResolver(policy Policy, maxPasses int, logger *log.Logger) *Resolver {
	return &Resolver{
		Policy:    policy,
		MaxPasses: maxPasses,
		logger:    logging.OrDiscard(logger),
	}
}

// PassLimit returns the pass cap for a store of n bodies.
func (r *Resolver) PassLimit(n int) int {
	if r.MaxPasses > 0 {
		return r.MaxPasses
	}
	return max(DefaultMinPasses, DefaultPassFactor*n)
}

// Resolve repeats passes until one changes nothing or the pass cap is hit.
// Hitting the cap leaves the store partially resolved and is reported through
// Stats.Converged and a warning.
func (r *Resolver) Resolve(bodies []dynamo.Body, bounds dynamo.Vec2) Stats {
	var st Stats
	limit := r.PassLimit(len(bodies))

	for st.Passes < limit {
		ps := r.Pass(bodies, bounds)
		st.Passes++
		st.Boundary += ps.Boundary
		st.Pairwise += ps.Pairwise
		st.Degenerate += ps.Degenerate
		if !ps.Changed() {
			st.Converged = true
			return st
		}
	}

	r.logger.Warn("collision passes exhausted",
		"passes", st.Passes,
		"bodies", len(bodies),
		"pairwise", st.Pairwise,
		"boundary", st.Boundary,
	)
	return st
}

// Pass scans every body in index order once: wall checks first, then at most
// one pairwise impulse against a later body not yet corrected in this pass.
func (r *Resolver) Pass(bodies []dynamo.Body, bounds dynamo.Vec2) PassStats {
	var ps PassStats
	r.resetCorrected(len(bodies))

	for i := range bodies {
		if reflect(&bodies[i], bounds) {
			ps.Boundary++
			if r.Policy == PolicyExclusive {
				r.corrected[i] = true
				continue
			}
		}

		for j := i + 1; j < len(bodies); j++ {
			if r.corrected[j] {
				continue
			}
			hit, degenerate := collide(&bodies[i], &bodies[j])
			if degenerate {
				ps.Degenerate++
				r.logger.Debug("skipping coincident pair", "i", i, "j", j)
				continue
			}
			if hit {
				ps.Pairwise++
				r.corrected[j] = true
				break
			}
		}
	}

	return ps
}

func (r *Resolver) resetCorrected(n int) {
	if cap(r.corrected) < n {
		r.corrected = make([]bool, n)
		return
	}
	r.corrected = r.corrected[:n]
	clear(r.corrected)
}
