package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screen"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/store"
	"github.com/abhisek/guessr/internal/ui/layout"
	"github.com/abhisek/guessr/internal/ui/theme"
)

// historyLimit caps how many games the screen lists.
const historyLimit = 50

type historyLoadedMsg struct {
	Games []store.GameRow
	Err   error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRow
	Err       error
}

// HistoryScreen lists past games. Enter expands a game into its answers.
type HistoryScreen struct {
	games    *store.EventRepo
	bank     *questionbank.Bank
	rows     []store.GameRow
	answers  map[string][]store.AnswerRow // sessionID → answers
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(games *store.EventRepo, bank *questionbank.Bank) *HistoryScreen {
	return &HistoryScreen{
		games:    games,
		bank:     bank,
		answers:  make(map[string][]store.AnswerRow),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	games := s.games
	return func() tea.Msg {
		rows, err := games.RecentGames(context.Background(), historyLimit)
		return historyLoadedMsg{Games: rows, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	games := s.games
	return func() tea.Msg {
		answers, err := games.Answers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Games
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.rows) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.rows[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Think of something and press PLAY!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.rows {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-10s %-24s %2d rounds  %d guesses",
			prefix, g.PlayedAt.Local().Format("Jan 02 15:04"), outcomeLabel(g.Outcome),
			s.subject(g), g.Rounds, g.Guesses)

		style := lipgloss.NewStyle().Foreground(outcomeColor(g.Outcome))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(g.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	answers, ok := s.answers[sessionID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    loading...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Italic(true).Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		line := dim.Render(fmt.Sprintf("    %2d. %-44s ", a.Round, a.Question)) +
			theme.AnswerTone(a.Answer).Render(fmt.Sprintf("%-12s", session.Answer(a.Answer).Label()))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

// subject names what the game was about: the right guess, or what the
// player revealed.
func (s *HistoryScreen) subject(g store.GameRow) string {
	id := g.CandidateID
	if id == "" {
		id = g.RevealedID
	}
	if id == "" {
		return g.Reveal
	}
	if s.bank != nil {
		if c, err := s.bank.Candidate(id); err == nil {
			return c.Name
		}
	}
	return id
}

func outcomeLabel(o session.Outcome) string {
	switch o {
	case session.OutcomeCorrect:
		return "guessed"
	case session.OutcomeExhausted:
		return "stumped"
	case session.OutcomeGaveUp:
		return "gave up"
	case session.OutcomeAbandoned:
		return "abandoned"
	default:
		return string(o)
	}
}

func outcomeColor(o session.Outcome) color.Color {
	switch o {
	case session.OutcomeCorrect:
		return theme.Success
	case session.OutcomeExhausted, session.OutcomeGaveUp:
		return theme.Accent
	default:
		return theme.TextDim
	}
}
