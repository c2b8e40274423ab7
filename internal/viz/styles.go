package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	canvasStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	statsWidth    = 44
	minCanvasCols = 20
	minCanvasRows = 8
)

type styles struct {
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	help   lipgloss.Style
	graph  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(statsWidth),
		header: lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		graph:  lipgloss.NewStyle().Foreground(t.Header),
	}
}

// EnergyPlot draws the energy history with asciigraph. A flat series is
// reported as text since there is nothing to scale.
func EnergyPlot(history []float64, width, height int) string {
	if len(history) < 2 {
		return "collecting..."
	}

	lo, hi := history[0], history[0]
	for _, v := range history {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo <= 1e-9*math.Max(math.Abs(hi), 1) {
		return "flat " + strings.Repeat("─", max(width-5, 0))
	}

	return asciigraph.Plot(history,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	)
}

// ProgressBar renders a ratio in [0, 1] as a bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 1 {
		return runningStyle.Render(bar)
	}
	return warningStyle.Render(bar)
}
