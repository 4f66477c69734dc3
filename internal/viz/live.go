package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/starfield/internal/analysis"
	"github.com/san-kum/starfield/internal/starfield"
)

const (
	minFrameDelay = time.Second / 60
	panelWidth    = 28
	historyLimit  = 120
)

type TickMsg time.Time

// Model drives a Screen from Bubble Tea ticks.
type Model struct {
	screen        *starfield.Screen
	theme         Theme
	frame         int
	fit           bool
	done          bool
	visible       []float64
	width, height int
}

// NewModel wraps s. With fit set the grid is resized to the terminal on
// every window size change, which re-places all stars.
func NewModel(s *starfield.Screen, theme Theme, fit bool) Model {
	return Model{
		screen:  s,
		theme:   theme,
		fit:     fit,
		visible: make([]float64, 0, historyLimit),
	}
}

func (m Model) Frame() int   { return m.frame }
func (m Model) Done() bool   { return m.done }
func (m Model) Theme() Theme { return m.theme }

func (m Model) tick() tea.Cmd {
	d := m.screen.Delay()
	if d < minFrameDelay {
		d = minFrameDelay
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if m.screen.Frames() <= 1 {
		return tea.Quit
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t":
			m.theme = m.theme.Next()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.fit {
			m.resize()
		}
	case TickMsg:
		if m.done {
			return m, nil
		}
		m.screen.UpdateBoardLinearly()
		m.frame++
		m.record()
		if m.frame >= m.screen.Frames()-1 {
			m.done = true
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize() {
	w := m.width - panelWidth - 4
	h := m.height - 2
	if w <= 0 || h <= 0 {
		return
	}
	if w == m.screen.Width() && h == m.screen.Height() {
		return
	}
	if err := m.screen.SetScreenSize(w, h); err == nil {
		m.visible = m.visible[:0]
	}
}

func (m *Model) record() {
	m.visible = append(m.visible, float64(analysis.Measure(m.screen).Marked))
	if len(m.visible) > historyLimit {
		m.visible = m.visible[1:]
	}
}

func (m Model) View() string {
	star := m.theme.StarStyle().Render(string(starfield.StarGlyph))
	var field strings.Builder
	for _, r := range strings.TrimSuffix(m.screen.String(), "\n") {
		if r == starfield.StarGlyph {
			field.WriteString(star)
			continue
		}
		field.WriteRune(r)
	}

	canvas := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Render(field.String())

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title)
	label := lipgloss.NewStyle().Foreground(m.theme.Label).Width(11)
	value := lipgloss.NewStyle().Foreground(m.theme.Value)
	row := func(k, v string) string { return label.Render(k) + value.Render(v) + "\n" }

	dir := m.screen.Direction()
	var s strings.Builder
	s.WriteString(title.Render("STARFIELD") + "\n\n")
	s.WriteString(row("Frame", fmt.Sprintf("%d/%d", m.frame, max(m.screen.Frames()-1, 0))))
	s.WriteString(row("Grid", fmt.Sprintf("%dx%d", m.screen.Width(), m.screen.Height())))
	s.WriteString(row("Stars", fmt.Sprintf("%d", len(m.screen.Stars()))))
	s.WriteString(row("Density", fmt.Sprintf("%.3f", m.screen.Density())))
	s.WriteString(row("Direction", dir.String()))
	s.WriteString(row("Theme", m.theme.Name))
	if len(m.visible) > 1 {
		chart := asciigraph.Plot(m.visible, asciigraph.Height(4), asciigraph.Width(panelWidth-8), asciigraph.Caption("visible"))
		s.WriteString("\n" + chart + "\n")
	}
	if m.done {
		s.WriteString("\n" + value.Render("done") + "\n")
	}
	s.WriteString("\n" + label.Render("T:Theme Q:Quit"))

	panel := lipgloss.NewStyle().Width(panelWidth).Padding(0, 1).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(s *starfield.Screen, theme Theme, fit bool) error {
	p := tea.NewProgram(NewModel(s, theme, fit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
