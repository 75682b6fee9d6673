// Package preview renders the strip in a terminal.
package preview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matt-g-everett/animatable/stream"
	"github.com/matt-g-everett/animatable/tween"
)

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the bubbletea model of the preview.
type Model struct {
	ctrl     *stream.Controller
	driver   *tween.Driver
	interval time.Duration

	width    int
	frame    *stream.Frame
	err      error
	quitting bool
}

// NewModel creates a preview of ctrl. The controller must already be
// started; ticks advance driver.
func NewModel(ctrl *stream.Controller, driver *tween.Driver, interval time.Duration) Model {
	return Model{
		ctrl:     ctrl,
		driver:   driver,
		interval: interval,
		frame:    stream.NewFrame(ctrl.Pixels()),
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles ticks, resizes and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		now := time.Time(msg)
		m.driver.Advance(now)
		m.frame = m.ctrl.CalculateFrame(now)
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if pixels := m.ctrl.Pixels(); pixels > 0 && m.width > 0 {
			m.ctrl.Measure(float64(m.columns()) / float64(pixels))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "n":
			m.err = m.ctrl.Cycle()
		}
		return m, nil
	}
	return m, nil
}

// columns is the number of terminal cells the strip occupies.
func (m Model) columns() int {
	pixels := m.ctrl.Pixels()
	if m.width <= 0 || m.width >= pixels {
		return pixels
	}
	return m.width
}

// View draws the strip followed by each element's state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("animatable preview"))
	b.WriteString("\n\n")
	b.WriteString(m.strip())
	b.WriteString("\n\n")
	for _, e := range m.ctrl.Elements() {
		b.WriteString(fmt.Sprintf("%-12s %s\n", e.Name(), e.State()))
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("n: next  q: quit"))
	return b.String()
}

func (m Model) strip() string {
	n := m.frame.Len()
	cols := m.columns()
	if n == 0 || cols == 0 {
		return ""
	}
	var b strings.Builder
	for col := 0; col < cols; col++ {
		p := m.frame.Pixel(col * n / cols).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.Hex())).Render("█"))
	}
	return b.String()
}
