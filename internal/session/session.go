// Package session runs guessing games: a Session is one game's state
// machine, and a Registry hosts many of them for concurrent players.
package session

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/engine"
	"github.com/abhisek/guessr/internal/questionbank"
)

// topEntries is how much of the ranking a FinalState keeps.
const topEntries = 3

// Session is one game. It is strictly sequential and not safe for
// concurrent use; a Registry serializes access per session.
type Session struct {
	bank      *questionbank.Bank
	processor *engine.Processor
	selector  *engine.Selector
	policy    engine.Policy
	logger    *zap.Logger

	ranking      engine.Ranking
	asked        engine.AskedSet
	eliminated   []string
	round        int
	current      string
	alternatives []string
	history      *Snapshot
	state        State
	declared     string
	guesses      int
	last         engine.Outcome
	final        *FinalState
}

type options struct {
	candidates []string
	rng        *rand.Rand
	policy     engine.Policy
	weights    engine.Weights
	logger     *zap.Logger
}

// Option configures a Session.
type Option func(*options)

// WithCandidates limits the game to the given candidate IDs.
func WithCandidates(ids ...string) Option {
	return func(o *options) { o.candidates = ids }
}

// WithRand sets the randomness used to order equally good questions.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithPolicy sets when the session stops asking.
func WithPolicy(p engine.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithWeights tunes question selection.
func WithWeights(w engine.Weights) Option {
	return func(o *options) { o.weights = w }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New starts a game over bank and returns its first step.
func New(bank *questionbank.Bank, opts ...Option) (*Session, NextStep, error) {
	if bank == nil {
		return nil, NextStep{}, fmt.Errorf("start session: %w", questionbank.ErrEmptyCatalog)
	}
	o := options{policy: engine.DefaultPolicy()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.rng == nil {
		rng, _, err := engine.NewRand(0)
		if err != nil {
			return nil, NextStep{}, fmt.Errorf("start session: %w", err)
		}
		o.rng = rng
	}

	ids := o.candidates
	if len(ids) == 0 {
		ids = bank.CandidateIDs()
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !bank.Contains(id) {
			return nil, NextStep{}, fmt.Errorf("start session: unknown candidate %q", id)
		}
		if seen[id] {
			return nil, NextStep{}, fmt.Errorf("start session: candidate %q listed twice", id)
		}
		seen[id] = true
	}

	s := &Session{
		bank:      bank,
		processor: engine.NewProcessor(bank, o.logger),
		selector:  engine.NewSelector(bank, o.rng, o.weights),
		policy:    o.policy,
		logger:    o.logger,
		ranking:   engine.NewRanking(ids),
		asked:     engine.NewAskedSet(),
	}
	return s, s.advance(), nil
}

// SubmitAnswer applies an answer to the presented question and returns
// what comes next.
func (s *Session) SubmitAnswer(a Answer) (NextStep, error) {
	if err := s.require(StateAwaitingAnswer); err != nil {
		return NextStep{}, fmt.Errorf("submit answer: %w", err)
	}

	snap := &Snapshot{
		Ranking:  s.ranking.Clone(),
		Asked:    s.asked.Clone(),
		Question: s.current,
		Round:    s.round,
	}

	s.state = StatePropagating
	out, err := s.processor.Apply(s.ranking, s.asked, s.current, int(a))
	if err != nil {
		s.state = StateAwaitingAnswer
		return NextStep{}, fmt.Errorf("submit answer: %w", err)
	}
	s.ranking, s.asked = out.Ranking, out.Asked
	s.last = out
	s.history = snap

	s.logger.Debug("answer submitted",
		zap.Int("round", s.round),
		zap.String("question", snap.Question),
		zap.Int("answer", int(a)),
		zap.Int("resolved", len(out.Resolutions)),
		zap.Int("settled", len(out.Settled)),
	)
	return s.advance(), nil
}

// GoBack restores the state from before the last answer and presents that
// question again. Only one step can be undone.
func (s *Session) GoBack() (NextStep, error) {
	if err := s.require(StateAwaitingAnswer); err != nil {
		return NextStep{}, fmt.Errorf("go back: %w", err)
	}
	if s.history == nil {
		return NextStep{}, fmt.Errorf("go back: %w", ErrNoSnapshot)
	}

	h := s.history
	s.history = nil
	s.ranking = h.Ranking
	s.asked = h.Asked
	s.current = h.Question
	s.round = h.Round
	s.alternatives = nil
	s.last = engine.Outcome{}
	s.logger.Debug("went back", zap.Int("round", s.round), zap.String("question", s.current))
	return s.askStep(), nil
}

// Continue rejects the declared candidate and resumes asking.
func (s *Session) Continue() (NextStep, error) {
	if err := s.require(StateDeclaring); err != nil {
		return NextStep{}, fmt.Errorf("continue: %w", err)
	}
	s.ranking, _ = s.ranking.Without(s.declared)
	s.eliminated = append(s.eliminated, s.declared)
	s.logger.Debug("guess rejected", zap.String("candidate", s.declared))
	s.declared = ""
	// The snapshot predates the elimination.
	s.history = nil
	return s.advance(), nil
}

// Accept ends the game with the declared candidate as the right answer.
func (s *Session) Accept() (FinalState, error) {
	if err := s.require(StateDeclaring); err != nil {
		return FinalState{}, fmt.Errorf("accept: %w", err)
	}
	return s.finish(OutcomeCorrect, s.declared), nil
}

// GiveUp ends the game from any state. After exhaustion the outcome is
// OutcomeExhausted, otherwise OutcomeGaveUp. Ending an ended session
// returns its existing result.
func (s *Session) GiveUp() FinalState {
	if s.final != nil {
		return *s.final
	}
	if s.state == StateExhausted {
		return s.finish(OutcomeExhausted, "")
	}
	return s.finish(OutcomeGaveUp, "")
}

// Close marks the session dead and releases its state. A live session ends
// as OutcomeAbandoned.
func (s *Session) Close() FinalState {
	if s.final != nil {
		return *s.final
	}
	return s.finish(OutcomeAbandoned, "")
}

func (s *Session) finish(o Outcome, candidate string) FinalState {
	top := s.ranking
	if len(top) > topEntries {
		top = top[:topEntries]
	}
	f := FinalState{
		Outcome:   o,
		Candidate: candidate,
		Rounds:    s.round,
		Guesses:   s.guesses,
		Asked:     s.asked.Len(),
		Top:       top.Clone(),
	}
	s.final = &f
	s.state = StateEnded
	s.ranking, s.asked, s.history, s.alternatives = nil, nil, nil, nil
	s.current, s.declared = "", ""
	s.logger.Debug("session ended", zap.String("outcome", string(o)), zap.String("candidate", candidate))
	return f
}

// advance picks the next question or verdict.
func (s *Session) advance() NextStep {
	s.state = StateSelectingNext
	picks := s.selector.Select(s.ranking, s.asked)

	switch s.policy.Decide(s.ranking, len(picks) > 0) {
	case engine.VerdictDeclare:
		top, _ := s.ranking.Top()
		s.state = StateDeclaring
		s.declared = top.Candidate
		s.guesses++
		return s.declareStep()
	case engine.VerdictExhausted:
		s.state = StateExhausted
		s.current, s.alternatives = "", nil
		return NextStep{Kind: StepExhausted, Round: s.round}
	default:
		s.round++
		s.current = picks[0]
		s.alternatives = picks[1:]
		s.state = StateAwaitingAnswer
		return s.askStep()
	}
}

func (s *Session) askStep() NextStep {
	return NextStep{
		Kind:         StepAsk,
		Round:        s.round,
		Question:     s.current,
		Statement:    s.bank.Statement(s.current),
		Alternatives: append([]string(nil), s.alternatives...),
	}
}

func (s *Session) declareStep() NextStep {
	top, _ := s.ranking.Top()
	step := NextStep{
		Kind:      StepDeclare,
		Round:     s.round,
		Candidate: top.Candidate,
		Score:     top.Score,
	}
	step.CandidateName = s.name(top.Candidate)
	if second, ok := s.ranking.RunnerUp(); ok {
		step.RunnerUp = second.Candidate
		step.RunnerUpName = s.name(second.Candidate)
		step.RunnerUpScore = second.Score
		step.HasRunnerUp = true
	}
	return step
}

// name returns a candidate's display name, falling back to its ID.
func (s *Session) name(id string) string {
	if c, err := s.bank.Candidate(id); err == nil {
		return c.Name
	}
	return id
}

func (s *Session) require(want State) error {
	if s.state == StateEnded {
		return ErrSessionEnded
	}
	if s.state != want {
		return fmt.Errorf("%w: %s", ErrWrongState, s.state)
	}
	return nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Round returns how many questions have been presented.
func (s *Session) Round() int { return s.round }

// Guesses returns how many times a candidate has been declared.
func (s *Session) Guesses() int { return s.guesses }

// Current returns the presented question, or "" when none is.
func (s *Session) Current() string { return s.current }

// CanGoBack reports whether GoBack would succeed.
func (s *Session) CanGoBack() bool {
	return s.state == StateAwaitingAnswer && s.history != nil
}

// Ranking returns a copy of the current ranking.
func (s *Session) Ranking() engine.Ranking { return s.ranking.Clone() }

// Asked returns a copy of the settled question texts.
func (s *Session) Asked() engine.AskedSet { return s.asked.Clone() }

// Eliminated returns candidates rejected through Continue, in order.
func (s *Session) Eliminated() []string { return append([]string(nil), s.eliminated...) }

// LastOutcome returns the trace of the most recent answer.
func (s *Session) LastOutcome() engine.Outcome { return s.last }

// Final returns the result once the session has ended.
func (s *Session) Final() (FinalState, bool) {
	if s.final == nil {
		return FinalState{}, false
	}
	return *s.final, true
}
