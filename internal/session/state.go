package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/guessr/internal/engine"
)

// Contract violations. They indicate a caller bug and are returned
// immediately.
var (
	ErrNoSnapshot     = errors.New("no previous question to go back to")
	ErrSessionEnded   = errors.New("session has ended")
	ErrWrongState     = errors.New("operation not allowed in current state")
	ErrUnknownSession = errors.New("unknown session")
)

// State is where a session is in the ask/answer loop.
type State int

const (
	StateAwaitingAnswer State = iota // a question is presented
	StatePropagating                 // an answer is being applied
	StateSelectingNext               // choosing the next question or verdict
	StateDeclaring                   // a guess is on the table
	StateExhausted                   // nothing left to ask and no leader
	StateEnded                       // terminal; state has been released
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StatePropagating:
		return "propagating"
	case StateSelectingNext:
		return "selecting_next"
	case StateDeclaring:
		return "declaring"
	case StateExhausted:
		return "exhausted"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Answer is a graded reply, from definitely no (-2) to definitely yes (+2).
type Answer int

const (
	AnswerNo          Answer = -2
	AnswerProbablyNo  Answer = -1
	AnswerDontKnow    Answer = 0
	AnswerProbablyYes Answer = 1
	AnswerYes         Answer = 2
)

// Answers lists every answer from most to least affirmative.
var Answers = []Answer{AnswerYes, AnswerProbablyYes, AnswerDontKnow, AnswerProbablyNo, AnswerNo}

// Label returns the button text for an answer.
func (a Answer) Label() string {
	switch a {
	case AnswerYes:
		return "Yes"
	case AnswerProbablyYes:
		return "Probably"
	case AnswerDontKnow:
		return "Don't know"
	case AnswerProbablyNo:
		return "Probably not"
	case AnswerNo:
		return "No"
	default:
		return fmt.Sprintf("Answer(%d)", int(a))
	}
}

// StepKind tags a NextStep.
type StepKind int

const (
	StepAsk StepKind = iota
	StepDeclare
	StepExhausted
)

func (k StepKind) String() string {
	switch k {
	case StepAsk:
		return "ask"
	case StepDeclare:
		return "declare"
	case StepExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// NextStep tells the presentation layer what to show. Which fields are set
// depends on Kind.
type NextStep struct {
	Kind  StepKind
	Round int

	// StepAsk
	Question     string
	Statement    string
	Alternatives []string

	// StepDeclare
	Candidate     string
	CandidateName string
	Score         float64
	RunnerUp      string
	RunnerUpName  string
	RunnerUpScore float64
	HasRunnerUp   bool
}

// Outcome is how a game ended.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeGaveUp    Outcome = "gave_up"
	OutcomeAbandoned Outcome = "abandoned"
)

// FinalState summarizes a finished session.
type FinalState struct {
	Outcome   Outcome
	Candidate string // the accepted guess, if any
	Rounds    int
	Guesses   int
	Asked     int
	Top       engine.Ranking // up to three leading entries
	// Revealed is the candidate the player says they were thinking of,
	// when it matched one in the catalog.
	Revealed string
	Reveal   string
}

// Snapshot is the state captured just before an answer is applied.
type Snapshot struct {
	Ranking  engine.Ranking
	Asked    engine.AskedSet
	Question string
	Round    int
}
