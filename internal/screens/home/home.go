package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screen"
	"github.com/abhisek/guessr/internal/screens/game"
	"github.com/abhisek/guessr/internal/screens/history"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/store"
	"github.com/abhisek/guessr/internal/ui/components"
)

// statsLoadedMsg carries the game log summary shown on the home screen.
type statsLoadedMsg struct {
	Stats store.Stats
	Last  *store.GameRow
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	bank          *questionbank.Bank
	games         *store.EventRepo
	catalog       string
	size          int
	menu          components.Menu
	stats         store.Stats
	mascotVariant MascotVariant
}

var (
	_ screen.Screen    = (*HomeScreen)(nil)
	_ screen.Refresher = (*HomeScreen)(nil)
)

// New creates a new HomeScreen. games may be nil, in which case history
// is disabled.
func New(registry *session.Registry, games *store.EventRepo) *HomeScreen {
	bank := registry.Bank()
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "PLAY", Hotkey: "p", Action: push(func() screen.Screen {
			return game.New(registry)
		})},
		{Label: "HISTORY", Hotkey: "h", Disabled: games == nil, Action: push(func() screen.Screen {
			return history.New(games, bank)
		})},
		{Label: "EXIT", Hotkey: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		bank:    bank,
		games:   games,
		catalog: bank.Name(),
		size:    bank.Len(),
		menu:    components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.games == nil {
		return nil
	}
	games := h.games
	return func() tea.Msg {
		ctx := context.Background()
		st, err := games.Stats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		msg := statsLoadedMsg{Stats: st}
		recent, err := games.RecentGames(ctx, 1)
		if err == nil && len(recent) == 1 {
			msg.Last = &recent[0]
		}
		return msg
	}
}

// Refresh reloads the stats after a game or the history screen closes.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.stats = msg.Stats
			h.mascotVariant = mascotFor(msg.Last)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderPrompt(h.catalog, h.size, cw))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, h.favorite(), cw, compact))
	sections = append(sections, renderArcadeMenu(
		h.menu.Labels(), h.menu.Selected, cw, h.menu.Disabled()))

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

// favorite names the candidate guessed correctly most often.
func (h *HomeScreen) favorite() string {
	if len(h.stats.TopGuessed) == 0 {
		return ""
	}
	id := h.stats.TopGuessed[0].CandidateID
	if c, err := h.bank.Candidate(id); err == nil {
		return c.Name
	}
	return id
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascotFor picks the mascot mood from the most recent game.
func mascotFor(last *store.GameRow) MascotVariant {
	if last == nil {
		return MascotIdle
	}
	switch last.Outcome {
	case session.OutcomeCorrect:
		return MascotCelebrating
	case session.OutcomeExhausted, session.OutcomeGaveUp:
		return MascotPuzzled
	default:
		return MascotIdle
	}
}
