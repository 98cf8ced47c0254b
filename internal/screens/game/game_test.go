package game

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screens/summary"
	"github.com/abhisek/guessr/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testRegistry(t *testing.T, entries []questionbank.Entry) *session.Registry {
	t.Helper()
	bank, err := questionbank.New(entries)
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return session.NewRegistry(bank, session.RegistryConfig{Seed: 3})
}

func threeGames() []questionbank.Entry {
	return []questionbank.Entry{
		{
			Candidate: questionbank.Candidate{ID: "a", Name: "Alpha"},
			Questions: []questionbank.Question{{Text: "Q1?"}, {Text: "Q2?"}},
		},
		{
			Candidate: questionbank.Candidate{ID: "b", Name: "Bravo"},
			Questions: []questionbank.Question{{Text: "Q1?"}},
		},
		{
			Candidate: questionbank.Candidate{ID: "c", Name: "Charlie"},
			Questions: []questionbank.Question{{Text: "Q3?"}},
		},
	}
}

func oneGame() []questionbank.Entry {
	return []questionbank.Entry{{
		Candidate: questionbank.Candidate{ID: "solo", Name: "Solo"},
		Questions: []questionbank.Question{{Text: "Q1?"}},
	}}
}

// started runs Init and applies the result.
func started(t *testing.T, registry *session.Registry) *GameScreen {
	t.Helper()
	g := New(registry)
	g.Update(g.Init()())
	if g.phase == phaseError {
		t.Fatalf("start failed: %s", g.errMsg)
	}
	return g
}

// press sends a key and, when it triggers a registry call, runs that call
// and applies its result. It returns whatever command the screen emits
// after that.
func press(t *testing.T, g *GameScreen, msg tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	_, cmd := g.Update(msg)
	if !g.busy || cmd == nil {
		return cmd
	}
	result := cmd()
	switch result.(type) {
	case stepMsg, finishedMsg:
		_, cmd = g.Update(result)
		return cmd
	}
	return func() tea.Msg { return result }
}

func TestGameScreen_Loading(t *testing.T) {
	g := New(testRegistry(t, threeGames()))
	if g.Title() != "Game" {
		t.Errorf("Title = %q, want %q", g.Title(), "Game")
	}
	if view := g.View(80, 24); !strings.Contains(view, "Thinking") {
		t.Errorf("expected loading view, got %q", view)
	}
}

func TestGameScreen_StartAsks(t *testing.T) {
	g := started(t, testRegistry(t, threeGames()))

	if g.phase != phaseAsking {
		t.Fatalf("phase = %v, want asking", g.phase)
	}
	if g.info.Round != 1 {
		t.Errorf("Round = %d, want 1", g.info.Round)
	}
	if view := g.View(80, 24); !strings.Contains(view, g.step.Question) {
		t.Errorf("view does not show question %q", g.step.Question)
	}
	if g.Status() != "Round 1" {
		t.Errorf("Status = %q, want %q", g.Status(), "Round 1")
	}
}

func TestGameScreen_AnswerThenBack(t *testing.T) {
	g := started(t, testRegistry(t, threeGames()))
	first := g.step.Question

	// "Don't know" keeps every candidate level, so the game keeps asking.
	press(t, g, keyPress('3'))
	if g.phase != phaseAsking {
		t.Fatalf("phase = %v after answer, want asking", g.phase)
	}
	if g.info.Round != 2 {
		t.Errorf("Round = %d, want 2", g.info.Round)
	}
	if !g.info.CanGoBack {
		t.Fatal("expected back to be available")
	}
	if g.step.Question == first {
		t.Errorf("question %q repeated", first)
	}

	press(t, g, keyPress('b'))
	if g.step.Question != first || g.info.Round != 1 {
		t.Errorf("after back: question %q round %d, want %q round 1", g.step.Question, g.info.Round, first)
	}
	if g.info.CanGoBack {
		t.Error("expected back to be spent")
	}

	// A second back is ignored.
	if cmd := press(t, g, keyPress('b')); cmd != nil {
		t.Error("expected no command when back is unavailable")
	}
}

func TestGameScreen_DeclareAccept(t *testing.T) {
	g := started(t, testRegistry(t, oneGame()))
	if g.phase != phaseDeclaring {
		t.Fatalf("phase = %v, want declaring", g.phase)
	}
	if view := g.View(80, 24); !strings.Contains(view, "Solo") {
		t.Error("expected the guess in the view")
	}

	cmd := press(t, g, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected navigation to the summary")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", msg.Screen)
	}
	if got := sum.Headline(); got != "Got it! It was Solo." {
		t.Errorf("Headline = %q", got)
	}
}

func TestGameScreen_RejectUntilExhausted(t *testing.T) {
	g := started(t, testRegistry(t, oneGame()))

	press(t, g, keyPress('n'))
	if g.phase != phaseRevealing {
		t.Fatalf("phase = %v, want revealing", g.phase)
	}

	g.reveal.Model.SetValue("solo")
	cmd := press(t, g, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected navigation to the summary")
	}
	msg := cmd().(router.ReplaceScreenMsg)
	if got := msg.Screen.(*summary.SummaryScreen).Headline(); got != "It was Solo. I'll get it next time." {
		t.Errorf("Headline = %q", got)
	}
}

func TestGameScreen_GiveUpWithoutName(t *testing.T) {
	registry := testRegistry(t, threeGames())
	g := started(t, registry)

	press(t, g, keyPress('g'))
	if g.phase != phaseRevealing {
		t.Fatalf("phase = %v, want revealing", g.phase)
	}
	cmd := press(t, g, specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected navigation to the summary")
	}
	msg := cmd().(router.ReplaceScreenMsg)
	if got := msg.Screen.(*summary.SummaryScreen).Headline(); got != "You stumped me." {
		t.Errorf("Headline = %q", got)
	}
	if registry.Len() != 0 {
		t.Errorf("registry still holds %d sessions", registry.Len())
	}
}

func TestGameScreen_QuitConfirm(t *testing.T) {
	registry := testRegistry(t, threeGames())
	g := started(t, registry)

	press(t, g, specialKey(tea.KeyEscape))
	if g.phase != phaseConfirmQuit {
		t.Fatalf("phase = %v, want confirm", g.phase)
	}
	press(t, g, keyPress('n'))
	if g.phase != phaseAsking {
		t.Fatalf("phase = %v after cancel, want asking", g.phase)
	}

	press(t, g, specialKey(tea.KeyEscape))
	cmd := press(t, g, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if registry.Len() != 0 {
		t.Errorf("registry still holds %d sessions", registry.Len())
	}
}

func TestGameScreen_ExpiredSession(t *testing.T) {
	registry := testRegistry(t, threeGames())
	g := started(t, registry)

	if _, err := registry.Abandon(context.Background(), g.handle); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	press(t, g, keyPress('1'))
	if g.phase != phaseError {
		t.Fatalf("phase = %v, want error", g.phase)
	}
	if !strings.Contains(g.View(80, 24), "timed out") {
		t.Error("expected timeout message")
	}

	_, cmd := g.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a command to leave")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestGameScreen_KeyHints(t *testing.T) {
	g := started(t, testRegistry(t, threeGames()))
	for _, h := range g.KeyHints() {
		if h.Key == "B" {
			t.Error("back hint shown before any answer")
		}
	}
	press(t, g, keyPress('3'))
	found := false
	for _, h := range g.KeyHints() {
		found = found || h.Key == "B"
	}
	if !found {
		t.Error("expected back hint after an answer")
	}
}
