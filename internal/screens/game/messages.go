package game

import (
	"github.com/abhisek/guessr/internal/session"
)

// startedMsg is sent when the registry has opened a session.
type startedMsg struct {
	Handle session.Handle
	Step   session.NextStep
	Info   session.Info
	Err    error
}

// stepMsg is sent after an answer, an undo or a rejected guess.
type stepMsg struct {
	Step session.NextStep
	Info session.Info
	Err  error
}

// finishedMsg is sent when the game has ended.
type finishedMsg struct {
	Final session.FinalState
	Err   error
}
