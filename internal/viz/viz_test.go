package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/integrators"
	"github.com/san-kum/collide/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0, "#ffffff")
	c.Set(3, 3, "")
	c.Set(-1, 0, "#000000")
	c.Set(4, 0, "#000000")

	if got := c.Grid[0][0]; got != blank|0x1 {
		t.Errorf("cell 0 = %U, want %U", got, blank|0x1)
	}
	if got := c.Grid[0][1]; got != blank|0x80 {
		t.Errorf("cell 1 = %U, want %U", got, blank|0x80)
	}
	if c.Colors[0][0] != "#ffffff" || c.Colors[0][1] != "" {
		t.Errorf("colors = %v", c.Colors[0])
	}

	c.Clear()
	if c.Grid[0][0] != blank || c.Colors[0][0] != "" {
		t.Error("Clear left state behind")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, "")

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("circle drew nothing")
	}

	small := NewCanvas(4, 2)
	small.FillCircle(2.2, 2.2, 0.1, "")
	if small.Grid[0][1] == blank {
		t.Error("sub-pixel circle should still light its centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if l != strings.Repeat(string(rune(blank)), 3) {
			t.Errorf("blank row rendered as %q", l)
		}
	}
}

func TestEnergyColor(t *testing.T) {
	theme := ThemeClassic
	tests := []struct {
		name   string
		energy float64
		total  float64
		n      int
		want   colorful.Color
	}{
		{"at rest", 0, 10, 2, theme.Slow},
		{"mean energy", 5, 10, 2, theme.Fast},
		{"above mean clamps", 9, 10, 2, theme.Fast},
		{"zero total", 0, 0, 2, theme.Slow},
		{"no bodies", 1, 1, 0, theme.Slow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnergyColor(tt.energy, tt.total, tt.n, theme)
			if !got.AlmostEqualRgb(tt.want) {
				t.Errorf("got %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}

	mid := EnergyColor(2.5, 10, 2, theme)
	if mid.AlmostEqualRgb(theme.Slow) || mid.AlmostEqualRgb(theme.Fast) {
		t.Errorf("half share should blend, got %s", mid.Hex())
	}
}

func TestBodyColors(t *testing.T) {
	still, _ := dynamo.NewBody(dynamo.Vec2{X: -5}, dynamo.Vec2{}, 1, 1)
	moving, _ := dynamo.NewBody(dynamo.Vec2{X: 5}, dynamo.Vec2{X: 4}, 1, 1)
	w := dynamo.World{Bounds: dynamo.Vec2{X: 20, Y: 20}}

	colors := BodyColors([]dynamo.Body{still, moving}, w, ThemeClassic)
	if len(colors) != 2 {
		t.Fatalf("got %d colours", len(colors))
	}
	if colors[0] != ThemeClassic.Slow.Hex() {
		t.Errorf("still body = %s, want %s", colors[0], ThemeClassic.Slow.Hex())
	}
	if colors[1] != ThemeClassic.Fast.Hex() {
		t.Errorf("moving body = %s, want %s", colors[1], ThemeClassic.Fast.Hex())
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(themes) {
		t.Fatalf("ThemeNames returned %d names", len(names))
	}
	for _, n := range names {
		if ThemeByName(n).Name != n {
			t.Errorf("ThemeByName(%q) mismatch", n)
		}
	}
	if ThemeByName("nope").Name != ThemeClassic.Name {
		t.Error("unknown theme should fall back to classic")
	}

	cur := ThemeClassic
	for range themes {
		cur = NextTheme(cur)
	}
	if cur.Name != ThemeClassic.Name {
		t.Errorf("cycling all themes ended on %s", cur.Name)
	}
}

func TestEnergyPlot(t *testing.T) {
	if got := EnergyPlot([]float64{1}, 20, 4); got != "collecting..." {
		t.Errorf("short history = %q", got)
	}
	if got := EnergyPlot([]float64{3, 3, 3}, 20, 4); !strings.HasPrefix(got, "flat") {
		t.Errorf("flat history = %q", got)
	}
	if got := EnergyPlot([]float64{1, 2, 3, 2}, 20, 4); strings.Count(got, "\n") < 3 {
		t.Errorf("plot too short:\n%s", got)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	a, err := dynamo.NewBody(dynamo.Vec2{X: -5}, dynamo.Vec2{X: 3}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := dynamo.NewBody(dynamo.Vec2{X: 5}, dynamo.Vec2{X: -3}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	w := dynamo.World{Bounds: dynamo.Vec2{X: 20, Y: 20}}
	s := sim.New(w, 1.0/60, integrators.NewSemiImplicit(), collision.NewResolver(collision.PolicyIndependent, 0, nil), nil)
	return NewModel(s, []dynamo.Body{a, b}, "test", ThemeClassic)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTicks(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(0, 0)

	m, cmd := update(t, m, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.ticks != 0 {
		t.Fatalf("first frame only records time, got %d ticks", m.ticks)
	}

	m, _ = update(t, m, TickMsg(start.Add(40*time.Millisecond)))
	if m.ticks != 2 {
		t.Errorf("40ms at 60Hz should run 2 ticks, got %d", m.ticks)
	}
	if len(m.energyHistory) != 2 {
		t.Errorf("energy history has %d samples", len(m.energyHistory))
	}
	if m.bodies[0].Position.X <= -5 {
		t.Error("bodies did not move")
	}
}

func TestModelPauseStepReset(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(0, 0)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.running {
		t.Fatal("space should pause")
	}

	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(time.Second)))
	if m.ticks != 0 {
		t.Fatalf("paused model ran %d ticks", m.ticks)
	}

	m, _ = update(t, m, key("s"))
	if m.ticks != 1 {
		t.Fatalf("single step ran %d ticks", m.ticks)
	}

	m, _ = update(t, m, key("r"))
	if m.ticks != 0 || m.bodies[0].Position.X != -5 || len(m.energyHistory) != 0 {
		t.Error("reset did not restore the initial state")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("t"))
	if m.theme.Name != ThemeOcean.Name {
		t.Errorf("theme = %s, want ocean", m.theme.Name)
	}

	m, _ = update(t, m, key("+"))
	if m.speed != 2 {
		t.Errorf("speed = %g, want 2", m.speed)
	}
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("-"))
	if m.speed != 0.5 {
		t.Errorf("speed = %g, want 0.5", m.speed)
	}

	m, _ = update(t, m, key("?"))
	if !m.showHelp {
		t.Error("? should toggle help")
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModelResizeAndView(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.canvas.Width != 120-statsWidth-4 || m.canvas.Height != 38 {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 3})
	if m.canvas.Width != minCanvasCols || m.canvas.Height != minCanvasRows {
		t.Errorf("canvas below minimum: %dx%d", m.canvas.Width, m.canvas.Height)
	}

	view := m.View()
	for _, want := range []string{"test", "RUNNING", "bodies"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
