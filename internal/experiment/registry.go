package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/integrators"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/sim"
)

type Registry struct {
	integrators map[string]func() integrators.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() integrators.Integrator),
	}

	r.integrators["symplectic"] = func() integrators.Integrator { return integrators.NewSemiImplicit() }
	r.integrators["euler"] = func() integrators.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() integrators.Integrator { return integrators.NewVerlet() }

	return r
}

func (r *Registry) GetIntegrator(name string) (integrators.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(w dynamo.World) []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergyDrift(w),
		metrics.NewConvergence(),
		metrics.NewPassLoad(),
		metrics.NewCollisionRate(),
		metrics.NewMeanSpeed(),
	}
}
