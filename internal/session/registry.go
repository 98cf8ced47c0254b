package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/engine"
	"github.com/abhisek/guessr/internal/questionbank"
)

// DefaultIdleTimeout is how long a session may wait for an answer before
// the reaper abandons it.
const DefaultIdleTimeout = 10 * time.Minute

// Handle identifies a session hosted by a Registry.
type Handle string

// AnswerRecord describes one submitted answer.
type AnswerRecord struct {
	SessionID string
	Round     int
	Question  string
	Answer    int
	Resolved  int
	Settled   int
	Penalized int
	At        time.Time
}

// GameRecord describes one finished game.
type GameRecord struct {
	SessionID string
	Outcome   Outcome
	Candidate string
	Revealed  string
	Reveal    string
	Rounds    int
	Guesses   int
	Duration  time.Duration
	PlayedAt  time.Time
}

// Recorder receives answers and finished games. Failures are logged and
// never affect play.
type Recorder interface {
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
	RecordGame(ctx context.Context, rec GameRecord) error
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Policy      engine.Policy
	Weights     engine.Weights
	IdleTimeout time.Duration
	// Seed makes question order reproducible. Zero draws a fresh seed per
	// session.
	Seed     uint64
	Recorder Recorder
	Logger   *zap.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type hosted struct {
	mu       sync.Mutex
	s        *Session
	started  time.Time
	lastSeen time.Time
}

// Registry hosts concurrent sessions over one shared Bank. Each session is
// serialized by its own lock; independent sessions proceed in parallel.
type Registry struct {
	bank   *questionbank.Bank
	cfg    RegistryConfig
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[Handle]*hosted
	started  uint64
}

// NewRegistry creates a registry over bank.
func NewRegistry(bank *questionbank.Bank, cfg RegistryConfig) *Registry {
	if cfg.Policy == (engine.Policy{}) {
		cfg.Policy = engine.DefaultPolicy()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		bank:     bank,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[Handle]*hosted),
	}
}

// Bank returns the shared question bank.
func (r *Registry) Bank() *questionbank.Bank { return r.bank }

// Start begins a new game, optionally over a subset of candidates.
func (r *Registry) Start(ctx context.Context, candidates ...string) (Handle, NextStep, error) {
	h := Handle(uuid.New().String())
	logger := r.logger.With(zap.String("session_id", string(h)))

	rng, err := r.newRand()
	if err != nil {
		return "", NextStep{}, err
	}
	s, step, err := New(r.bank,
		WithCandidates(candidates...),
		WithRand(rng),
		WithPolicy(r.cfg.Policy),
		WithWeights(r.cfg.Weights),
		WithLogger(logger),
	)
	if err != nil {
		return "", NextStep{}, err
	}

	now := r.cfg.Now()
	r.mu.Lock()
	r.sessions[h] = &hosted{s: s, started: now, lastSeen: now}
	r.mu.Unlock()

	logger.Info("session started", zap.Int("candidates", len(s.Ranking())))
	return h, step, nil
}

func (r *Registry) newRand() (*rand.Rand, error) {
	r.mu.Lock()
	r.started++
	n := r.started
	r.mu.Unlock()

	if r.cfg.Seed == 0 {
		rng, _, err := engine.NewRand(0)
		return rng, err
	}
	return rand.New(rand.NewPCG(r.cfg.Seed, n)), nil
}

func (r *Registry) lookup(h Handle) (*hosted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, h)
	}
	return e, nil
}

// with runs fn on the session under its lock. A session that ended or was
// reaped while the caller waited reports ErrSessionEnded.
func (r *Registry) with(h Handle, fn func(e *hosted) error) error {
	e, err := r.lookup(h)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.s.State() == StateEnded {
		return fmt.Errorf("%w: %s", ErrSessionEnded, h)
	}
	if err := fn(e); err != nil {
		return err
	}
	e.lastSeen = r.cfg.Now()
	return nil
}

// Submit answers the session's current question.
func (r *Registry) Submit(ctx context.Context, h Handle, a Answer) (NextStep, error) {
	var step NextStep
	err := r.with(h, func(e *hosted) error {
		question, round := e.s.Current(), e.s.Round()
		var err error
		step, err = e.s.SubmitAnswer(a)
		if err != nil {
			return err
		}
		out := e.s.LastOutcome()
		r.recordAnswer(ctx, AnswerRecord{
			SessionID: string(h),
			Round:     round,
			Question:  question,
			Answer:    int(a),
			Resolved:  len(out.Resolutions),
			Settled:   len(out.Settled),
			Penalized: len(out.Penalties),
			At:        r.cfg.Now(),
		})
		return nil
	})
	return step, err
}

// Back undoes the last answer.
func (r *Registry) Back(ctx context.Context, h Handle) (NextStep, error) {
	var step NextStep
	err := r.with(h, func(e *hosted) error {
		var err error
		step, err = e.s.GoBack()
		return err
	})
	return step, err
}

// Continue rejects the declared guess and keeps playing.
func (r *Registry) Continue(ctx context.Context, h Handle) (NextStep, error) {
	var step NextStep
	err := r.with(h, func(e *hosted) error {
		var err error
		step, err = e.s.Continue()
		return err
	})
	return step, err
}

// Accept confirms the declared guess and ends the game.
func (r *Registry) Accept(ctx context.Context, h Handle) (FinalState, error) {
	var final FinalState
	err := r.with(h, func(e *hosted) error {
		var err error
		final, err = e.s.Accept()
		if err != nil {
			return err
		}
		r.finish(ctx, h, e, final)
		return nil
	})
	return final, err
}

// GiveUp ends the game. reveal is the player's answer to "who was it?";
// it is matched exactly (ignoring case) against candidate IDs and names.
func (r *Registry) GiveUp(ctx context.Context, h Handle, reveal string) (FinalState, error) {
	var final FinalState
	err := r.with(h, func(e *hosted) error {
		final = e.s.GiveUp()
		final.Reveal = reveal
		if c, ok := r.bank.Lookup(reveal); ok {
			final.Revealed = c.ID
		}
		r.finish(ctx, h, e, final)
		return nil
	})
	return final, err
}

// Abandon closes a game the player walked away from.
func (r *Registry) Abandon(ctx context.Context, h Handle) (FinalState, error) {
	var final FinalState
	err := r.with(h, func(e *hosted) error {
		final = e.s.Close()
		r.finish(ctx, h, e, final)
		return nil
	})
	return final, err
}

// Info is a read-only view of a hosted session.
type Info struct {
	State      State
	Round      int
	Guesses    int
	CanGoBack  bool
	Remaining  int
	Eliminated int
	// Lead is the leader's advantage over the runner-up; the session
	// guesses once it reaches Margin.
	Lead    float64
	Margin  float64
	Started time.Time
}

// Info describes a session without changing it.
func (r *Registry) Info(h Handle) (Info, error) {
	e, err := r.lookup(h)
	if err != nil {
		return Info{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return Info{
		State:      e.s.State(),
		Round:      e.s.Round(),
		Guesses:    e.s.Guesses(),
		CanGoBack:  e.s.CanGoBack(),
		Remaining:  len(e.s.ranking),
		Eliminated: len(e.s.eliminated),
		Lead:       e.s.ranking.Lead(),
		Margin:     e.s.policy.Margin,
		Started:    e.started,
	}, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap abandons every session idle for longer than the idle timeout and
// returns how many were removed.
func (r *Registry) Reap(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	var idle []Handle
	for h, e := range r.sessions {
		if e.mu.TryLock() {
			if now.Sub(e.lastSeen) > r.cfg.IdleTimeout {
				idle = append(idle, h)
			}
			e.mu.Unlock()
		}
	}
	r.mu.Unlock()

	n := 0
	for _, h := range idle {
		e, err := r.lookup(h)
		if err != nil {
			continue
		}
		e.mu.Lock()
		if e.s.State() != StateEnded && now.Sub(e.lastSeen) > r.cfg.IdleTimeout {
			final := e.s.Close()
			r.finish(ctx, h, e, final)
			n++
		}
		e.mu.Unlock()
	}
	if n > 0 {
		r.logger.Info("reaped idle sessions", zap.Int("count", n))
	}
	return n
}

// Run reaps idle sessions until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	interval := r.cfg.IdleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Reap(ctx, r.cfg.Now())
		}
	}
}

// finish records a finished game and drops it. The caller holds e.mu.
func (r *Registry) finish(ctx context.Context, h Handle, e *hosted, final FinalState) {
	r.mu.Lock()
	delete(r.sessions, h)
	r.mu.Unlock()

	now := r.cfg.Now()
	r.logger.Info("session finished",
		zap.String("session_id", string(h)),
		zap.String("outcome", string(final.Outcome)),
		zap.String("candidate", final.Candidate),
		zap.Int("rounds", final.Rounds),
	)
	if r.cfg.Recorder == nil {
		return
	}
	rec := GameRecord{
		SessionID: string(h),
		Outcome:   final.Outcome,
		Candidate: final.Candidate,
		Revealed:  final.Revealed,
		Reveal:    final.Reveal,
		Rounds:    final.Rounds,
		Guesses:   final.Guesses,
		Duration:  now.Sub(e.started),
		PlayedAt:  now,
	}
	if err := r.cfg.Recorder.RecordGame(ctx, rec); err != nil {
		r.logger.Warn("failed to record game", zap.String("session_id", string(h)), zap.Error(err))
	}
}

func (r *Registry) recordAnswer(ctx context.Context, rec AnswerRecord) {
	if r.cfg.Recorder == nil {
		return
	}
	if err := r.cfg.Recorder.RecordAnswer(ctx, rec); err != nil {
		r.logger.Warn("failed to record answer", zap.String("session_id", rec.SessionID), zap.Error(err))
	}
}
