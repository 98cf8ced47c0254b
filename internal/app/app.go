// Package app is the root of the terminal UI.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screen"
	"github.com/abhisek/guessr/internal/screens/home"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/store"
	"github.com/abhisek/guessr/internal/ui/layout"
)

// Options holds the dependencies shared by every screen.
type Options struct {
	Registry *session.Registry
	// Games is optional; without it history is unavailable and games are
	// not logged.
	Games  *store.EventRepo
	Logger *zap.Logger
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

// model draws the header and footer around whichever screen the router
// has on top.
type model struct {
	router  *router.Router
	catalog string
	width   int
	height  int
}

func newModel(opts Options) model {
	return model{
		router:  router.New(home.New(opts.Registry, opts.Games)),
		catalog: opts.Registry.Bank().Name(),
	}
}

func (m model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if _, ok := m.router.Active().(screen.KeyHintProvider); !ok {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}
	return m, m.router.Update(msg)
}

// status is the right side of the header: the active screen's own status
// or the catalog name.
func (m model) status() string {
	if sp, ok := m.router.Active().(screen.StatusProvider); ok {
		if s := sp.Status(); s != "" {
			return s
		}
	}
	return m.catalog
}

func (m model) hints() []layout.KeyHint {
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), quitHint)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quitHint}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quitHint,
	}
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.router.Active().Title(), m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the terminal UI and blocks until the player quits or ctx is
// cancelled. The registry's reaper runs for as long as the program does.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go opts.Registry.Run(ctx)

	p := tea.NewProgram(newModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Debug("program exited")
	return nil
}
