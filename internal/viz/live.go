package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/sim"
)

const (
	width           = 80
	height          = 24
	frameRate       = 60
	historyCapacity = 300
	maxCatchUp      = 8
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps the simulation from a fixed-timestep clock and draws it.
// The body store is only touched from Update, which Bubble Tea runs on a
// single goroutine.
type Model struct {
	sim           *sim.Simulator
	bodies        []dynamo.Body
	initialState  []dynamo.Body
	clock         *sim.Clock
	last          time.Time
	speed         float64
	running       bool
	t             float64
	ticks         int
	unconverged   int
	lastStats     collision.Stats
	energyHistory []float64
	canvas        *Canvas
	theme         Theme
	styles        styles
	title         string
	showHelp      bool
}

// NewModel takes ownership of bodies; the caller must not mutate them while
// the program runs.
func NewModel(s *sim.Simulator, bodies []dynamo.Body, title string, theme Theme) Model {
	return Model{
		sim:           s,
		bodies:        bodies,
		initialState:  dynamo.Clone(bodies),
		clock:         sim.NewClock(s.Dt(), maxCatchUp),
		speed:         1,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		canvas:        NewCanvas(width-statsWidth, height-2),
		theme:         theme,
		styles:        newStyles(theme),
		title:         title,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.last = time.Time{}
		case "s":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "+", "=":
			m.speed = math.Min(m.speed*2, 8)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.125)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-statsWidth-4, minCanvasCols)
		rows := max(msg.Height-2, minCanvasRows)
		m.canvas = NewCanvas(cols, rows)
	case TickMsg:
		now := time.Time(msg)
		if m.running {
			if !m.last.IsZero() {
				elapsed := time.Duration(float64(now.Sub(m.last)) * m.speed)
				for n := m.clock.Advance(elapsed); n > 0; n-- {
					m.step()
				}
			}
			m.last = now
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.lastStats = m.sim.Step(m.bodies)
	m.t += m.sim.Dt()
	m.ticks++
	if !m.lastStats.Converged {
		m.unconverged++
	}

	if len(m.energyHistory) >= historyCapacity {
		copy(m.energyHistory, m.energyHistory[1:])
		m.energyHistory = m.energyHistory[:historyCapacity-1]
	}
	m.energyHistory = append(m.energyHistory, metrics.TotalEnergy(m.bodies, m.sim.World()))
}

func (m *Model) reset() {
	copy(m.bodies, m.initialState)
	m.clock.Reset()
	m.last = time.Time{}
	m.t = 0
	m.ticks = 0
	m.unconverged = 0
	m.lastStats = collision.Stats{}
	m.energyHistory = m.energyHistory[:0]
}

// draw projects the world box onto the canvas, keeping the aspect ratio.
func (m *Model) draw() {
	m.canvas.Clear()
	w := m.sim.World()
	pw, ph := m.canvas.PixelSize()
	scale := math.Min(float64(pw-1)/(2*w.Bounds.X), float64(ph-1)/(2*w.Bounds.Y))

	colors := BodyColors(m.bodies, w, m.theme)
	for i, b := range m.bodies {
		cx := (b.Position.X + w.Bounds.X) * scale
		cy := (w.Bounds.Y - b.Position.Y) * scale
		m.canvas.FillCircle(cx, cy, b.Radius()*scale, colors[i])
	}
}

func (m Model) View() string {
	m.draw()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		m.stats(),
	)
}

func (m Model) stats() string {
	s := m.styles
	w := m.sim.World()

	status := runningStyle.Render("RUNNING")
	if !m.running {
		status = pausedStyle.Render("PAUSED")
	}

	row := func(label, value string) string {
		return s.label.Render(label) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(s.header.Render(m.title) + "  " + status + "\n")
	b.WriteString(row("bodies", fmt.Sprintf("%d", len(m.bodies))))
	b.WriteString(row("time", fmt.Sprintf("%.2fs (x%.3g)", m.t, m.speed)))
	b.WriteString(row("ticks", fmt.Sprintf("%d", m.ticks)))
	b.WriteString(row("gravity", fmt.Sprintf("%.2f", w.Gravity)))
	b.WriteString(row("passes", fmt.Sprintf("%d", m.lastStats.Passes)))
	b.WriteString(row("impulses", fmt.Sprintf("%d pair / %d wall", m.lastStats.Pairwise, m.lastStats.Boundary)))

	converged := 1.0
	if m.ticks > 0 {
		converged = 1 - float64(m.unconverged)/float64(m.ticks)
	}
	b.WriteString(row("converged", ProgressBar(converged, 20)))

	p := metrics.Momentum(m.bodies)
	b.WriteString(row("momentum", fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)))
	b.WriteString(row("energy", fmt.Sprintf("%.3f", metrics.TotalEnergy(m.bodies, w))))
	b.WriteString(row("theme", m.theme.Name))
	b.WriteString("\n" + s.graph.Render(EnergyPlot(m.energyHistory, statsWidth-14, 6)) + "\n")

	if m.showHelp {
		b.WriteString(s.help.Render("space pause  s step  r reset\nt theme  +/- speed  q quit"))
	} else {
		b.WriteString(s.help.Render("? help"))
	}

	return s.stats.Render(b.String())
}
