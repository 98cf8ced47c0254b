// Package autoplay plays games against an oracle that knows the answer,
// to measure how well the engine converges.
package autoplay

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/guessr/internal/engine"
	"github.com/abhisek/guessr/internal/questionbank"
	"github.com/abhisek/guessr/internal/session"
)

// Config controls a simulation run.
type Config struct {
	// Noise is the probability that the oracle gives a random hedged answer
	// instead of the truth.
	Noise   float64
	Seed    uint64
	Workers int
	Policy  engine.Policy
	Weights engine.Weights
	Logger  *zap.Logger
}

// Result is the outcome of one game.
type Result struct {
	Secret  string
	Outcome session.Outcome
	Guess   string
	Rounds  int
	Guesses int
	Correct bool
}

// Report aggregates a run.
type Report struct {
	Results     []Result
	Correct     int
	Exhausted   int
	MeanRounds  float64
	MeanGuesses float64
	Seed        uint64
}

// Games returns the number of games played.
func (r Report) Games() int { return len(r.Results) }

// SuccessRate returns the fraction of games the engine won.
func (r Report) SuccessRate() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(r.Correct) / float64(len(r.Results))
}

// Oracle answers questions about a secret candidate.
type Oracle struct {
	bank   *questionbank.Bank
	secret string
	noise  float64
	rng    *rand.Rand
}

// NewOracle creates an oracle thinking of secret.
func NewOracle(bank *questionbank.Bank, secret string, noise float64, rng *rand.Rand) *Oracle {
	return &Oracle{bank: bank, secret: secret, noise: noise, rng: rng}
}

var hedged = []session.Answer{session.AnswerProbablyYes, session.AnswerDontKnow, session.AnswerProbablyNo}

// Answer replies to a question: yes if the secret has it, no otherwise.
func (o *Oracle) Answer(question string) session.Answer {
	if o.noise > 0 && o.rng.Float64() < o.noise {
		return hedged[o.rng.IntN(len(hedged))]
	}
	if o.bank.Has(o.secret, question) {
		return session.AnswerYes
	}
	return session.AnswerNo
}

// Play runs one game to completion with the oracle thinking of secret.
func Play(bank *questionbank.Bank, secret string, cfg Config, rng *rand.Rand) (Result, error) {
	if !bank.Contains(secret) {
		return Result{}, fmt.Errorf("play: unknown candidate %q", secret)
	}
	if cfg.Policy == (engine.Policy{}) {
		cfg.Policy = engine.DefaultPolicy()
	}
	oracle := NewOracle(bank, secret, cfg.Noise, rng)

	s, step, err := session.New(bank,
		session.WithRand(rng),
		session.WithPolicy(cfg.Policy),
		session.WithWeights(cfg.Weights),
		session.WithLogger(cfg.Logger),
	)
	if err != nil {
		return Result{}, fmt.Errorf("play %q: %w", secret, err)
	}

	// Every step either settles a question or eliminates a candidate.
	limit := bank.TotalQuestions() + bank.Len() + 1
	var final session.FinalState
	for n := 0; ; n++ {
		if n > limit {
			return Result{}, fmt.Errorf("play %q: no verdict after %d steps", secret, n)
		}
		switch step.Kind {
		case session.StepAsk:
			step, err = s.SubmitAnswer(oracle.Answer(step.Question))
		case session.StepDeclare:
			if step.Candidate == secret {
				final, err = s.Accept()
				if err != nil {
					return Result{}, fmt.Errorf("play %q: %w", secret, err)
				}
				return result(secret, final), nil
			}
			step, err = s.Continue()
		case session.StepExhausted:
			return result(secret, s.GiveUp()), nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("play %q: %w", secret, err)
		}
	}
}

func result(secret string, f session.FinalState) Result {
	return Result{
		Secret:  secret,
		Outcome: f.Outcome,
		Guess:   f.Candidate,
		Rounds:  f.Rounds,
		Guesses: f.Guesses,
		Correct: f.Outcome == session.OutcomeCorrect && f.Candidate == secret,
	}
}

// Run plays one game per candidate, each candidate taking a turn as the
// secret. Games run in parallel; results are in catalog order and depend
// only on the seed.
func Run(ctx context.Context, bank *questionbank.Bank, cfg Config) (Report, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Seed == 0 {
		seed, err := engine.NewSeed()
		if err != nil {
			return Report{}, err
		}
		cfg.Seed = seed
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ids := bank.CandidateIDs()
	results := make([]Result, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
			res, err := Play(bank, id, cfg, rng)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{Results: results, Seed: cfg.Seed}
	var rounds, guesses int
	for _, r := range results {
		if r.Correct {
			rep.Correct++
		}
		if r.Outcome == session.OutcomeExhausted {
			rep.Exhausted++
		}
		rounds += r.Rounds
		guesses += r.Guesses
	}
	if n := len(results); n > 0 {
		rep.MeanRounds = float64(rounds) / float64(n)
		rep.MeanGuesses = float64(guesses) / float64(n)
	}
	cfg.Logger.Info("simulation finished",
		zap.Int("games", rep.Games()),
		zap.Int("correct", rep.Correct),
		zap.Float64("noise", cfg.Noise),
		zap.Uint64("seed", cfg.Seed),
	)
	return rep, nil
}
