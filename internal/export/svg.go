package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/viz"
)

const background = "#0a0a0a"

// SceneSVG draws the world box and every body as a filled circle, coloured
// by its share of the total energy. scale is pixels per world unit.
func SceneSVG(w io.Writer, bodies []dynamo.Body, world dynamo.World, theme viz.Theme, scale float64) error {
	if !(scale > 0) {
		return fmt.Errorf("export: scale must be positive, got %g", scale)
	}

	width := 2 * world.Bounds.X * scale
	height := 2 * world.Bounds.Y * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s" stroke="%s"/>
`, width, height, width, height, background, string(theme.Border))

	colors := viz.BodyColors(bodies, world, theme)
	for i, b := range bodies {
		cx := (b.Position.X + world.Bounds.X) * scale
		cy := (world.Bounds.Y - b.Position.Y) * scale
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, cx, cy, b.Radius()*scale, colors[i])
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesSVG plots ys against xs as a polyline. A flat series is drawn
// through the middle of the image.
func SeriesSVG(w io.Writer, xs, ys []float64, width, height int, strokeColor string) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("export: %d x values for %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", len(xs))
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
		minY -= 0.5
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	_, err := io.WriteString(w, sb.String())
	return err
}
