package optim

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/experiment"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one experiment per grid point and returns the point with the
// lowest value of metricName, along with every trial in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, nil, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	var trials []Trial

	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		exp, err := buildExperiment(params)
		if err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}
		trials = append(trials, Trial{Params: maps.Clone(params), Value: val})
		if val < best {
			best = val
			bestParams = maps.Clone(params)
		}
		return nil
	})
	if err != nil {
		return nil, 0, trials, err
	}

	return bestParams, best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return eval(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, next, eval); err != nil {
			return err
		}
	}
	return nil
}

var setters = map[string]func(*config.Config, float64){
	"bodies":     func(c *config.Config, v float64) { c.Bodies = int(v); c.Scene = nil },
	"radius":     func(c *config.Config, v float64) { c.Radius = v },
	"max_speed":  func(c *config.Config, v float64) { c.MaxSpeed = v },
	"gravity":    func(c *config.Config, v float64) { c.Gravity = v },
	"tick_rate":  func(c *config.Config, v float64) { c.TickRate = v },
	"max_passes": func(c *config.Config, v float64) { c.MaxPasses = int(v) },
}

// Params lists the config fields Apply understands.
func Params() []string {
	return slices.Sorted(maps.Keys(setters))
}

// Apply returns a copy of base with the named fields overwritten.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	c := *base
	c.Scene = slices.Clone(base.Scene)
	for name, v := range params {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("optim: unknown parameter %q (available: %v)", name, Params())
		}
		set(&c, v)
	}
	return &c, nil
}
