package config

import (
	"slices"
	"sort"
)

var Presets = map[string]*Config{
	"gas": DefaultConfig(),
	"gravity": {
		Bodies: 40, Radius: 0.8, MaxSpeed: 4,
		Bounds:  BoundsConfig{X: 20, Y: 15},
		Gravity: DefaultGravity, UniformDensity: true,
		TickRate: DefaultTickRate, Duration: 20,
		Integrator: DefaultIntegrator, Policy: "exclusive",
	},
	"crowd": {
		Bodies: 100, Radius: 0.8, MaxSpeed: 8,
		Bounds:   BoundsConfig{X: 20, Y: 20},
		TickRate: 120, Duration: 10,
		Integrator: DefaultIntegrator, Policy: DefaultPolicy,
	},
	"headon": {
		Bounds:   BoundsConfig{X: 10, Y: 10},
		TickRate: DefaultTickRate, Duration: 5,
		Integrator: DefaultIntegrator, Policy: DefaultPolicy,
		Scene: []BodyConfig{
			{X: -0.4, VX: 5, Radius: 0.5, Mass: 1},
			{X: 0.4, VX: -5, Radius: 0.5, Mass: 1},
		},
	},
	"wall": {
		Bounds:   BoundsConfig{X: 10, Y: 10},
		TickRate: DefaultTickRate, Duration: 5,
		Integrator: DefaultIntegrator, Policy: DefaultPolicy,
		Scene: []BodyConfig{
			{Y: 9.4, VY: 3, Radius: 0.5, Mass: 1},
		},
	},
	"cradle": {
		Bounds:   BoundsConfig{X: 10, Y: 5},
		TickRate: DefaultTickRate, Duration: 10,
		Integrator: DefaultIntegrator, Policy: DefaultPolicy,
		Scene: []BodyConfig{
			{X: -6, VX: 4, Radius: 0.5, Mass: 1},
			{X: -1, Radius: 0.5, Mass: 1},
			{X: 0, Radius: 0.5, Mass: 1},
			{X: 1, Radius: 0.5, Mass: 1},
			{X: 2, Radius: 0.5, Mass: 1},
		},
	},
	"empty": {
		Bounds:   BoundsConfig{X: DefaultBound, Y: DefaultBound},
		TickRate: DefaultTickRate, Duration: 1,
		Integrator: DefaultIntegrator, Policy: DefaultPolicy,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Scene = slices.Clone(p.Scene)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
