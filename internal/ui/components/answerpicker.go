package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/ui/theme"
)

// AnswerPicker is a numbered vertical list of answer labels. Number keys
// choose directly; arrows and Enter choose the highlighted one.
type AnswerPicker struct {
	Options  []string
	Selected int
	// Chosen is the index picked on the last Update, or -1.
	Chosen int
}

// NewAnswerPicker creates a picker with the first option highlighted.
func NewAnswerPicker(options []string) AnswerPicker {
	return AnswerPicker{Options: options, Chosen: -1}
}

// Update handles keyboard navigation and selection.
func (m AnswerPicker) Update(msg tea.Msg) (AnswerPicker, tea.Cmd) {
	m.Chosen = -1
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				m.Chosen = i
			}
		}
	}
	return m, nil
}

// View renders the options.
func (m AnswerPicker) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			prefix = "▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)) + "\n"
	}
	return s
}
