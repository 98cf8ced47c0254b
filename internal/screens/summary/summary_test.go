package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guessr/internal/engine"
	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/session"
)

func testBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	bank, err := questionbank.New([]questionbank.Entry{
		{
			Candidate: questionbank.Candidate{ID: "chess", Name: "Chess"},
			Questions: []questionbank.Question{{Text: "Is it abstract?"}},
		},
		{
			Candidate: questionbank.Candidate{ID: "go", Name: "Go"},
			Questions: []questionbank.Question{{Text: "Is it played with stones?"}},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return bank
}

func testFinal() session.FinalState {
	return session.FinalState{
		Outcome:   session.OutcomeCorrect,
		Candidate: "chess",
		Rounds:    7,
		Guesses:   1,
		Asked:     7,
		Top:       engine.Ranking{{Candidate: "chess", Score: 12}, {Candidate: "go", Score: 3}},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testFinal(), testBank(t))
	if s.Title() != "Game Over" {
		t.Errorf("Title = %q, want %q", s.Title(), "Game Over")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testFinal(), testBank(t))
	view := s.View(80, 24)
	for _, want := range []string{"Chess", "Rounds: 7", "Top suspects"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Headline(t *testing.T) {
	bank := testBank(t)
	tests := []struct {
		name  string
		final session.FinalState
		want  string
	}{
		{"correct", testFinal(), "Got it! It was Chess."},
		{"revealed", session.FinalState{Outcome: session.OutcomeGaveUp, Revealed: "go", Reveal: "go"}, "It was Go. I'll get it next time."},
		{"unknown reveal", session.FinalState{Outcome: session.OutcomeExhausted, Reveal: "Catan"}, `"Catan"? I have never heard of it.`},
		{"no reveal", session.FinalState{Outcome: session.OutcomeGaveUp}, "You stumped me."},
		{"abandoned", session.FinalState{Outcome: session.OutcomeAbandoned}, "Game abandoned."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.final, bank).Headline(); got != tt.want {
				t.Errorf("Headline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testFinal(), testBank(t))
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Fatalf("expected a command for key %v", code)
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("expected PopToRootMsg for key %v", code)
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testFinal(), testBank(t))
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
