package sim

import (
	"context"

	"github.com/san-kum/collide/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// SceneFunc builds a fresh body store for a seed.
type SceneFunc func(seed int64) ([]dynamo.Body, error)

// Ensemble runs independently seeded simulations in parallel. Every run gets
// its own Simulator and body store; nothing is shared between goroutines.
type Ensemble struct {
	newSim    func() *Simulator
	scene     SceneFunc
	numRuns   int
	seedStart int64
}

func NewEnsemble(newSim func() *Simulator, scene SceneFunc, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{newSim: newSim, scene: scene, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			bodies, err := e.scene(e.seedStart + int64(i))
			if err != nil {
				return err
			}
			results[i], err = e.newSim().Run(ctx, bodies, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
