package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screen"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/ui/layout"
	"github.com/abhisek/guessr/internal/ui/theme"
)

// SummaryScreen shows how a game ended.
type SummaryScreen struct {
	final session.FinalState
	bank  *questionbank.Bank
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(final session.FinalState, bank *questionbank.Bank) *SummaryScreen {
	return &SummaryScreen{final: final, bank: bank}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// Headline returns the one-line verdict for the game.
func (s *SummaryScreen) Headline() string {
	f := s.final
	switch f.Outcome {
	case session.OutcomeCorrect:
		return fmt.Sprintf("Got it! It was %s.", s.name(f.Candidate))
	case session.OutcomeExhausted, session.OutcomeGaveUp:
		switch {
		case f.Revealed != "":
			return fmt.Sprintf("It was %s. I'll get it next time.", s.name(f.Revealed))
		case f.Reveal != "":
			return fmt.Sprintf("%q? I have never heard of it.", f.Reveal)
		default:
			return "You stumped me."
		}
	default:
		return "Game abandoned."
	}
}

func (s *SummaryScreen) name(id string) string {
	if c, err := s.bank.Candidate(id); err == nil {
		return c.Name
	}
	return id
}

func (s *SummaryScreen) View(width, height int) string {
	f := s.final
	var b strings.Builder

	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if f.Outcome == session.OutcomeCorrect {
		headStyle = theme.Correct
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(headStyle.Render(s.Headline())))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Rounds: %d        Guesses: %d        Questions asked: %d",
		f.Rounds, f.Guesses, f.Asked)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if len(f.Top) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Top suspects")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, e := range f.Top {
		line := fmt.Sprintf("  %d. %-28s %6.1f", i+1, s.name(e.Candidate), e.Score)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Candidate == f.Candidate || e.Candidate == f.Revealed {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
