package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the body gradient and panel colours of the live view.
type Theme struct {
	Name   string
	Slow   colorful.Color
	Fast   colorful.Color
	Border lipgloss.Color
	Header lipgloss.Color
	Muted  lipgloss.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:   "classic",
		Slow:   rgb(50, 100, 120),
		Fast:   rgb(255, 100, 70),
		Border: lipgloss.Color("240"),
		Header: lipgloss.Color("86"),
		Muted:  lipgloss.Color("245"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Slow:   rgb(0, 60, 140),
		Fast:   rgb(0, 255, 200),
		Border: lipgloss.Color("#4488aa"),
		Header: lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeEmber = Theme{
		Name:   "ember",
		Slow:   rgb(90, 20, 20),
		Fast:   rgb(255, 220, 60),
		Border: lipgloss.Color("#8b6b8c"),
		Header: lipgloss.Color("#ff6b6b"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Slow:   rgb(70, 70, 70),
		Fast:   rgb(255, 255, 255),
		Border: lipgloss.Color("#888888"),
		Header: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}
)

var themes = []Theme{ThemeClassic, ThemeOcean, ThemeEmber, ThemeMono}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after cur in the cycle.
func NextTheme(cur Theme) Theme {
	for i, t := range themes {
		if t.Name == cur.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeClassic
}
