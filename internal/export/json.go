package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/sim"
)

// Report is the JSON form of a headless run.
type Report struct {
	Bodies      int                `json:"bodies"`
	Integrator  string             `json:"integrator"`
	Policy      string             `json:"policy"`
	Seed        int64              `json:"seed"`
	Gravity     float64            `json:"gravity"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Passes      int                `json:"passes"`
	Unconverged int                `json:"unconverged"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	Energy      []float64          `json:"energy"`
	Metrics     map[string]float64 `json:"metrics"`
}

func NewReport(cfg *config.Config, bodies int, result *sim.Result) Report {
	return Report{
		Bodies:      bodies,
		Integrator:  cfg.Integrator,
		Policy:      cfg.Policy,
		Seed:        cfg.Seed,
		Gravity:     cfg.Gravity,
		Dt:          cfg.Dt(),
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		Passes:      result.Passes,
		Unconverged: result.Unconverged,
		EnergyDrift: result.EnergyDrift,
		Times:       result.Times,
		Energy:      result.Energy,
		Metrics:     result.Metrics,
	}
}

func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
