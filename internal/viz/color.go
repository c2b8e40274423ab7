package viz

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/metrics"
)

// EnergyColor blends from the theme's slow colour to its fast colour by the
// body's share of the mean energy: energy·n/total, clamped to [0, 1]. A body
// with exactly the mean energy is drawn fully "fast".
func EnergyColor(energy, total float64, n int, theme Theme) colorful.Color {
	t := 0.0
	if total > 0 && n > 0 {
		t = energy * float64(n) / total
	}
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	return theme.Slow.BlendRgb(theme.Fast, t).Clamped()
}

// BodyColors returns one hex colour per body.
func BodyColors(bodies []dynamo.Body, w dynamo.World, theme Theme) []string {
	colors := make([]string, len(bodies))
	total := metrics.TotalEnergy(bodies, w)
	for i, b := range bodies {
		colors[i] = EnergyColor(metrics.BodyEnergy(b, w), total, len(bodies), theme).Hex()
	}
	return colors
}
