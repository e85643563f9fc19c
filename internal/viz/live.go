// Package viz renders the running simulation in the terminal: a bubbletea
// program that draws the vorticity field as a color ramp with an optional
// velocity-arrow overlay view, plus a sparkline of the peak vorticity
// history. Several physics steps are batched per rendered frame; without
// batching the visible evolution would appear too slow.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/vortsim/vortsim/internal/solver"
)

const historyCapacity = 240

type TickMsg time.Time

type viewMode int

const (
	viewVorticity viewMode = iota
	viewVelocity
)

// Model drives the solver from the bubbletea event loop.
type Model struct {
	sol           *solver.Solver
	stepsPerFrame int
	frameRate     int
	theme         Theme
	themeIdx      int
	mode          viewMode
	paused        bool
	showHelp      bool
	peakHistory   []float64
}

func NewModel(sol *solver.Solver, stepsPerFrame, frameRate int, themeName string) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	th := GetTheme(themeName)
	idx := 0
	for i, t := range Themes {
		if t.Name == th.Name {
			idx = i
		}
	}
	return Model{
		sol:           sol,
		stepsPerFrame: stepsPerFrame,
		frameRate:     frameRate,
		theme:         th,
		themeIdx:      idx,
		peakHistory:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sol.Reset()
			m.peakHistory = m.peakHistory[:0]
		case "v":
			if m.mode == viewVorticity {
				m.mode = viewVelocity
			} else {
				m.mode = viewVorticity
			}
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
			m.theme = Themes[m.themeIdx]
		case "h", "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.sol.Advance()
			}
			m.peakHistory = append(m.peakHistory, m.sol.MaxAbsVorticity())
			if len(m.peakHistory) > historyCapacity {
				m.peakHistory = m.peakHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Header).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	warnStyle := lipgloss.NewStyle().Foreground(m.theme.Warning)

	var field string
	switch m.mode {
	case viewVelocity:
		field = RenderVelocity(m.sol, m.theme)
	default:
		field = RenderVorticity(m.sol, m.theme)
	}

	clock := m.sol.Clock()
	var stats strings.Builder
	stats.WriteString(headerStyle.Render("vortsim") + "\n\n")
	stats.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.5f s", clock.Time)) + "\n")
	stats.WriteString(labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d", clock.Step)) + "\n")
	stats.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.3e s", clock.Dt)) + "\n")
	stats.WriteString(labelStyle.Render("peak |ω|") + valueStyle.Render(fmt.Sprintf("%.3f /s", m.sol.MaxAbsVorticity())) + "\n")
	if m.paused {
		stats.WriteString("\n" + warnStyle.Render("paused") + "\n")
	}
	if n := len(m.sol.Warnings()); n > 0 {
		w := m.sol.Warnings()[n-1]
		stats.WriteString("\n" + warnStyle.Render(fmt.Sprintf("health: %s", w.Message)) + "\n")
	}

	if len(m.peakHistory) > 2 {
		graph := asciigraph.Plot(m.peakHistory,
			asciigraph.Height(6),
			asciigraph.Width(42),
			asciigraph.Caption("peak |ω|"),
		)
		stats.WriteString("\n" + graph + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, field, "  ", stats.String())

	help := "space pause · v view · t theme · r reset · q quit"
	if m.showHelp {
		help += " · vorticity ramp: blue ccw / red cw"
	}
	return body + "\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(help) + "\n"
}
