package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/audio"
	"github.com/san-kum/gravsim/internal/gravity"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	fps             = 60
	historyCapacity = 600

	// TrailLength is the number of past positions kept per body.
	TrailLength = 50

	minSpeed = 0.125
	maxSpeed = 8
	margin   = 0.9
)

type TickMsg time.Time

// Model contains simulation state, visualization buffers, and UI context.
type Model struct {
	state   *gravity.State
	initial []gravity.Spec
	synth   *audio.Synth

	name          string
	t, dt         float64
	speed         float64
	running       bool
	err           error
	width, height int
	canvas        *Canvas

	trails        [][]r2.Vec
	energyHistory []float64

	zoom     harmonica.Spring
	scale    float64
	scaleVel float64
}

// NewModel seeds a fresh state with specs. When synth is non-nil every step
// updates its voices.
func NewModel(name string, specs []gravity.Spec, dt float64, synth *audio.Synth) (Model, error) {
	state := gravity.NewState()
	if err := state.Seed(specs); err != nil {
		return Model{}, err
	}

	m := Model{
		state:         state,
		initial:       append([]gravity.Spec(nil), specs...),
		synth:         synth,
		name:          name,
		dt:            dt,
		speed:         1,
		running:       true,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		energyHistory: make([]float64, 0, historyCapacity),
		zoom:          harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	m.resetTrails()
	m.scale = m.targetScale()
	m.sound(state.Results())

	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.speed = math.Min(maxSpeed, m.speed*2)
		case "-", "_":
			m.speed = math.Max(minSpeed, m.speed/2)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.scale, m.scaleVel = m.zoom.Update(m.scale, m.scaleVel, m.targetScale())
		return m, tick()
	}
	return m, nil
}

// step advances the physics simulation by dt times the speed multiplier.
func (m *Model) step() {
	dt := m.dt * m.speed
	results, err := m.state.Step(nil, dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.t += dt

	for i, r := range results {
		trail := append(m.trails[i], r2.Vec{X: r.X, Y: r.Y})
		if len(trail) > TrailLength {
			trail = trail[len(trail)-TrailLength:]
		}
		m.trails[i] = trail
	}

	m.energyHistory = append(m.energyHistory, gravity.Energy(m.state.Bodies()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.sound(results)
}

// reset reseeds the initial bodies.
func (m *Model) reset() {
	if err := m.state.Seed(m.initial); err != nil {
		m.err = err
		return
	}
	m.t = 0
	m.err = nil
	m.energyHistory = m.energyHistory[:0]
	m.resetTrails()
	m.sound(m.state.Results())
}

func (m *Model) resetTrails() {
	m.trails = make([][]r2.Vec, m.state.Len())
	for i := range m.trails {
		m.trails[i] = make([]r2.Vec, 0, TrailLength+1)
	}
}

func (m *Model) sound(results []gravity.Result) {
	if m.synth != nil {
		m.synth.SetVoices(audio.Voices(results))
	}
}

// targetScale is the dots per world unit that fits every massive body.
func (m *Model) targetScale() float64 {
	extent := 0.0
	for _, b := range m.state.Bodies() {
		if b.Active() {
			extent = math.Max(extent, r2.Norm(b.Pos))
		}
	}
	return m.canvas.Fit(math.Max(extent, gravity.MinDistance), margin)
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.scale > 0 {
		m.canvas.Scale = m.scale
	} else {
		m.canvas.Scale = m.targetScale()
	}

	for _, trail := range m.trails {
		for k := 1; k < len(trail); k++ {
			m.canvas.Segment(trail[k-1], trail[k])
		}
	}
	for _, b := range m.state.Bodies() {
		m.canvas.Body(b.Pos, b.Mass)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusPaused.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("x%g (dt %.3g)", m.speed, m.dt*m.speed)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.state.Len())) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", energy)) + "\n")

	s.WriteString("\n" + Separator(30) + "\n")
	for i, r := range m.state.Results() {
		id := r.ID.String()
		if id == "" || id == "null" {
			id = fmt.Sprintf("#%d", i)
		}
		s.WriteString(bodyStyle(i).Render(fmt.Sprintf("%-8.8s", id)) +
			valueStyle.Render(fmt.Sprintf(" m=%-6g (%7.1f, %7.1f)", r.Mass, r.X, r.Y)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reseed Q:Quit\n+/-:Speed"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Time returns the simulated time since the last reseed.
func (m Model) Time() float64 { return m.t }

// Speed returns the current speed multiplier.
func (m Model) Speed() float64 { return m.speed }

// Trail returns the recorded positions of body i, oldest first.
func (m Model) Trail(i int) []r2.Vec { return m.trails[i] }
