// Package card is the full-screen terminal UI: one card per question, sliding
// left or right as the walk moves forward or back.
package card

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/aretw0/serology/pkg/session"
)

const (
	tickInterval = 16 * time.Millisecond
	slideWidth   = 24
	slideStep    = 6
	cardWidth    = 48
)

var (
	primary   = lipgloss.Color("#8B5CF6")
	success   = lipgloss.Color("#22C55E")
	danger    = lipgloss.Color("#F43F5E")
	textDim   = lipgloss.Color("#94A3B8")
	border    = lipgloss.Color("#334155")
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2).
			Width(cardWidth)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	hintStyle  = lipgloss.NewStyle().Foreground(textDim).Italic(true)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model over a session.Manager.
type Model struct {
	manager *session.Manager
	title   string

	view   domain.View
	status string
	err    error

	// offset is the remaining slide distance; positive slides in from the
	// right (forward), negative from the left (backward).
	offset int

	width  int
	height int
}

// New creates a model showing the manager's current view.
func New(m *session.Manager, title string) Model {
	model := Model{manager: m, title: title}
	model.view, model.err = m.View()
	return model
}

// Current returns the domain view currently displayed.
func (m Model) Current() domain.View {
	return m.view
}

// Offset returns the remaining slide distance.
func (m Model) Offset() int {
	return m.offset
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		switch {
		case m.offset > 0:
			m.offset = max(0, m.offset-slideStep)
		case m.offset < 0:
			m.offset = min(0, m.offset+slideStep)
		}
		if m.offset != 0 {
			return m, tick()
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	var (
		next domain.View
		err  error
	)

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "p", "+":
		if m.view.IsConclusion() {
			return m, nil
		}
		next, err = m.manager.Select(ctx, domain.Positive)
	case "right", "n", "-":
		if m.view.IsConclusion() {
			return m, nil
		}
		next, err = m.manager.Select(ctx, domain.Negative)
	case "enter", "space":
		if !m.view.CanAdvance() {
			m.status = "select positive or negative first"
			return m, nil
		}
		next, err = m.manager.Advance(ctx)
	case "backspace", "b":
		if !m.view.CanGoBack {
			return m, nil
		}
		next, err = m.manager.Retreat(ctx)
	case "r":
		next, err = m.manager.Reset(ctx)
	default:
		return m, nil
	}

	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""

	moved := next.Kind != m.view.Kind || next.NodeID != m.view.NodeID
	m.view = next
	if !moved {
		return m, nil
	}
	if next.Direction == domain.Backward {
		m.offset = -slideWidth
	} else {
		m.offset = slideWidth
	}
	return m, tick()
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m Model) render() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	card := cardStyle.Render(m.renderBody())
	margin := max(0, (m.width-lipgloss.Width(card))/2+m.offset)
	content := lipgloss.NewStyle().MarginLeft(margin).Render(card)

	if m.title != "" {
		content = titleStyle.Render(m.title) + "\n\n" + content
	}
	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(danger).Render(m.status)
	}
	return content
}

func (m Model) renderBody() string {
	var b strings.Builder

	if m.view.IsConclusion() {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(success).Render(m.view.Text))
		b.WriteString("\n\n")
		for _, f := range m.view.Findings {
			b.WriteString(fmt.Sprintf("%-14s %s\n", f.Label, f.Selection))
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("b back · r reset · q quit"))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.view.Label + "?"))
	b.WriteString("\n\n")
	b.WriteString(button("positive", m.view.Selection == domain.Positive, m.view.HasPositive, success))
	b.WriteString("  ")
	b.WriteString(button("negative", m.view.Selection == domain.Negative, m.view.HasNegative, danger))
	b.WriteString("\n\n")

	hints := []string{"←/→ select"}
	if m.view.CanAdvance() {
		hints = append(hints, "enter next")
	}
	if m.view.CanGoBack {
		hints = append(hints, "⌫ back")
	}
	hints = append(hints, "q quit")
	b.WriteString(hintStyle.Render(strings.Join(hints, " · ")))
	return b.String()
}

func button(label string, selected, enabled bool, c color.Color) string {
	style := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(border)
	switch {
	case !enabled:
		style = style.Foreground(textDim).Faint(true)
	case selected:
		style = style.BorderForeground(c).Foreground(c).Bold(true)
		label = "● " + label
	default:
		label = "○ " + label
	}
	return style.Render(label)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(m *session.Manager, title string) error {
	p := tea.NewProgram(New(m, title))
	_, err := p.Run()
	return err
}
