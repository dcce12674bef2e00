package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravgen/internal/collision"
	"github.com/san-kum/gravgen/internal/kinematics"
	"github.com/san-kum/gravgen/internal/motion"
)

const (
	canvasWidth  = 36
	canvasHeight = 22
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model animates one bouncing-ball simulation in the terminal.
type Model struct {
	params   motion.Params
	resolver *collision.Resolver
	state    motion.State
	canvas   *Canvas
	running  bool
	bounces  int
	settled  bool
	scale    float64 // meters spanned by the canvas
}

func NewModel(p motion.Params) Model {
	span := p.InitialHeight + kinematics.ApexHeight(p.InitialVelocity, p.Gravity)
	span = span*1.15 + 1

	return Model{
		params:   p,
		resolver: collision.NewResolver(p),
		state:    motion.State{Height: p.InitialHeight, Velocity: p.InitialVelocity},
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
		scale:    span,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(int(m.params.SampleRate)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = motion.State{Height: m.params.InitialHeight, Velocity: m.params.InitialVelocity}
			m.bounces = 0
			m.settled = false
		}
	case TickMsg:
		if m.running && !m.settled {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/time.Duration(int(m.params.SampleRate)), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	dt := m.params.Dt()
	cand := kinematics.Step(m.state, m.params.Gravity, dt)
	next, bounce, bounced := m.resolver.Resolve(m.state, cand, dt)
	if bounced {
		m.bounces++
		if bounce.Settled {
			m.settled = true
		}
	}
	m.state = next
}

func (m *Model) draw() {
	m.canvas.Clear()

	subH := canvasHeight * 4
	groundY := subH - 3
	m.canvas.HLine(groundY)

	frac := (m.state.Height - m.params.GroundHeight) / m.scale
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	ballY := groundY - 3 - int(frac*float64(groundY-6))
	m.canvas.FillCircle(canvasWidth, ballY, 3)
}

func (m Model) View() string {
	stats := headerStyle.Render("gravgen live") + "\n"
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}
	stats += row("time", fmt.Sprintf("%.2f s", m.state.Time))
	stats += row("height", fmt.Sprintf("%.2f m", m.state.Height))
	stats += row("velocity", fmt.Sprintf("%+.2f m/s", m.state.Velocity))
	stats += row("energy", fmt.Sprintf("%.3f m", motion.Energy(m.state, m.params.Gravity, m.params.GroundHeight)))
	stats += row("gravity", fmt.Sprintf("%.2f m/s²", m.params.Gravity))
	stats += row("restitution", fmt.Sprintf("%.2f", m.params.Restitution))
	stats += row("bounces", fmt.Sprintf("%d", m.bounces))
	if m.settled {
		stats += row("status", "at rest")
	} else if m.running {
		stats += row("status", "running")
	} else {
		stats += row("status", "paused")
	}
	stats += helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats),
	)
}

// RunLive starts the live view and blocks until the user quits.
func RunLive(p motion.Params) error {
	prog := tea.NewProgram(NewModel(p))
	_, err := prog.Run()
	return err
}
