// Package game is the screen where the player answers questions until the
// engine names what they are thinking of.
package game

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/guessr/internal/router"
	"github.com/abhisek/guessr/internal/screen"
	"github.com/abhisek/guessr/internal/screens/summary"
	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/ui/components"
	"github.com/abhisek/guessr/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseDeclaring
	phaseRevealing // asking "who was it?" after exhausting or giving up
	phaseConfirmQuit
	phaseError
)

// GameScreen implements screen.Screen for one game.
type GameScreen struct {
	registry *session.Registry
	handle   session.Handle
	step     session.NextStep
	info     session.Info
	phase    phase
	resume   phase // where a cancelled quit goes back to
	picker   components.AnswerPicker
	reveal   components.TextInput
	busy     bool
	errMsg   string
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a GameScreen. The session starts on Init.
func New(registry *session.Registry) *GameScreen {
	return &GameScreen{
		registry: registry,
		picker:   components.NewAnswerPicker(answerLabels()),
		reveal:   components.NewTextInput("Type its name...", 60),
	}
}

func answerLabels() []string {
	labels := make([]string, len(session.Answers))
	for i, a := range session.Answers {
		labels[i] = a.Label()
	}
	return labels
}

func (g *GameScreen) Init() tea.Cmd {
	registry := g.registry
	return func() tea.Msg {
		ctx := context.Background()
		h, step, err := registry.Start(ctx)
		if err != nil {
			return startedMsg{Err: err}
		}
		info, err := registry.Info(h)
		return startedMsg{Handle: h, Step: step, Info: info, Err: err}
	}
}

func (g *GameScreen) Title() string {
	return "Game"
}

func (g *GameScreen) Status() string {
	if g.info.Round == 0 {
		return g.registry.Bank().Name()
	}
	return fmt.Sprintf("Round %d", g.info.Round)
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	switch g.phase {
	case phaseAsking:
		hints := []layout.KeyHint{{Key: "1-5", Description: "Answer"}}
		if g.info.CanGoBack {
			hints = append(hints, layout.KeyHint{Key: "B", Description: "Back"})
		}
		return append(hints,
			layout.KeyHint{Key: "G", Description: "Give up"},
			layout.KeyHint{Key: "Esc", Description: "Quit"},
		)
	case phaseDeclaring:
		return []layout.KeyHint{
			{Key: "Y", Description: "Right"},
			{Key: "N", Description: "Wrong"},
			{Key: "G", Description: "Give up"},
		}
	case phaseRevealing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reveal"},
			{Key: "Esc", Description: "Skip"},
		}
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit game"},
			{Key: "N", Description: "Keep going"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (g *GameScreen) View(width, height int) string {
	switch g.phase {
	case phaseError:
		return renderError(width, g.errMsg)
	case phaseLoading:
		return renderLoading(width)
	case phaseConfirmQuit:
		return renderQuitConfirm(width)
	case phaseDeclaring:
		return g.renderDeclare(width)
	case phaseRevealing:
		return g.renderReveal(width)
	default:
		return g.renderQuestion(width)
	}
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		g.busy = false
		if msg.Err != nil {
			return g.fail(msg.Err)
		}
		g.handle = msg.Handle
		return g.show(msg.Step, msg.Info)

	case stepMsg:
		g.busy = false
		if msg.Err != nil {
			return g.fail(msg.Err)
		}
		return g.show(msg.Step, msg.Info)

	case finishedMsg:
		g.busy = false
		if msg.Err != nil {
			return g.fail(msg.Err)
		}
		final, bank := msg.Final, g.registry.Bank()
		return g, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(final, bank)}
		}

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	if g.phase == phaseRevealing {
		var cmd tea.Cmd
		g.reveal, cmd = g.reveal.Update(msg)
		return g, cmd
	}
	return g, nil
}

// show moves to the phase a step calls for.
func (g *GameScreen) show(step session.NextStep, info session.Info) (screen.Screen, tea.Cmd) {
	g.step, g.info = step, info
	switch step.Kind {
	case session.StepAsk:
		g.phase = phaseAsking
		g.picker = components.NewAnswerPicker(answerLabels())
	case session.StepDeclare:
		g.phase = phaseDeclaring
	case session.StepExhausted:
		return g.startReveal()
	}
	return g, nil
}

func (g *GameScreen) startReveal() (screen.Screen, tea.Cmd) {
	g.phase = phaseRevealing
	g.reveal = components.NewTextInput("Type its name...", 60)
	return g, g.reveal.Init()
}

func (g *GameScreen) fail(err error) (screen.Screen, tea.Cmd) {
	g.phase = phaseError
	switch {
	case errors.Is(err, session.ErrUnknownSession):
		g.errMsg = "This game timed out."
	case errors.Is(err, session.ErrSessionEnded):
		g.errMsg = "This game is already over."
	default:
		g.errMsg = err.Error()
	}
	return g, nil
}

func (g *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if g.phase == phaseError {
		return g, func() tea.Msg { return router.PopScreenMsg{} }
	}
	// Ignore keys while a registry call is in flight.
	if g.busy || g.phase == phaseLoading {
		return g, nil
	}

	switch g.phase {
	case phaseConfirmQuit:
		switch key {
		case "y", "Y":
			return g.call(g.abandon())
		case "n", "N", "esc":
			g.phase = g.resume
		}
		return g, nil

	case phaseRevealing:
		switch key {
		case "enter":
			return g.call(g.giveUp(g.reveal.Value()))
		case "esc":
			return g.call(g.giveUp(""))
		}
		var cmd tea.Cmd
		g.reveal, cmd = g.reveal.Update(msg)
		return g, cmd

	case phaseDeclaring:
		switch key {
		case "y", "Y":
			return g.call(g.accept())
		case "n", "N":
			return g.call(g.rejectGuess())
		case "g", "G":
			return g.startReveal()
		case "esc":
			return g.confirmQuit()
		}
		return g, nil

	case phaseAsking:
		switch key {
		case "b", "B":
			if g.info.CanGoBack {
				return g.call(g.back())
			}
			return g, nil
		case "g", "G":
			return g.startReveal()
		case "esc":
			return g.confirmQuit()
		}
		var cmd tea.Cmd
		g.picker, cmd = g.picker.Update(msg)
		if g.picker.Chosen >= 0 {
			return g.call(g.submit(session.Answers[g.picker.Chosen]))
		}
		return g, cmd
	}
	return g, nil
}

func (g *GameScreen) confirmQuit() (screen.Screen, tea.Cmd) {
	g.resume = g.phase
	g.phase = phaseConfirmQuit
	return g, nil
}

func (g *GameScreen) call(cmd tea.Cmd) (screen.Screen, tea.Cmd) {
	g.busy = true
	return g, cmd
}

func (g *GameScreen) submit(a session.Answer) tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		step, err := registry.Submit(context.Background(), h, a)
		return stepWithInfo(registry, h, step, err)
	}
}

func (g *GameScreen) back() tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		step, err := registry.Back(context.Background(), h)
		return stepWithInfo(registry, h, step, err)
	}
}

func (g *GameScreen) rejectGuess() tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		step, err := registry.Continue(context.Background(), h)
		return stepWithInfo(registry, h, step, err)
	}
}

func (g *GameScreen) accept() tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		final, err := registry.Accept(context.Background(), h)
		return finishedMsg{Final: final, Err: err}
	}
}

func (g *GameScreen) giveUp(reveal string) tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		final, err := registry.GiveUp(context.Background(), h, reveal)
		return finishedMsg{Final: final, Err: err}
	}
}

func (g *GameScreen) abandon() tea.Cmd {
	registry, h := g.registry, g.handle
	return func() tea.Msg {
		_, err := registry.Abandon(context.Background(), h)
		if err != nil && !errors.Is(err, session.ErrUnknownSession) && !errors.Is(err, session.ErrSessionEnded) {
			return finishedMsg{Err: err}
		}
		return router.PopScreenMsg{}
	}
}

func stepWithInfo(registry *session.Registry, h session.Handle, step session.NextStep, err error) stepMsg {
	if err != nil {
		return stepMsg{Err: err}
	}
	info, err := registry.Info(h)
	return stepMsg{Step: step, Info: info, Err: err}
}
