// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guessr/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init runs once when the screen is opened.
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the area between header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints. Screens implementing
// it also handle Esc themselves.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider puts a short status on the right of the header.
type StatusProvider interface {
	Status() string
}

// Refresher is notified when the screens above it close and it is shown
// again.
type Refresher interface {
	Refresh() tea.Cmd
}
