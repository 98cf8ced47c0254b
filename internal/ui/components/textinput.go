package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused single-line field for typing a name.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused field accepting at most limit characters.
// A limit of zero means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.CharLimit = max(limit, 0)
	ti.Focus()
	return TextInput{Model: ti}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update passes key presses to the field.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the field.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns what was typed, without surrounding space.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}
