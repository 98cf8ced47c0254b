package engine

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/abhisek/guessr/internal/questionbank"
)

// MaxDelta bounds the confidence of a single answer: -MaxDelta is "definitely
// no" and +MaxDelta is "definitely yes".
const MaxDelta = 2

// ErrDeltaOutOfRange is returned when an answer's confidence is outside
// [-MaxDelta, MaxDelta].
var ErrDeltaOutOfRange = errors.New("confidence delta out of range")

// Resolution records one question settled by an Apply call.
type Resolution struct {
	Question string
	Delta    int
	Implied  bool // reached through a dependency rather than answered
	Depth    int
}

// Penalty records a score deduction for a candidate whose dependencies
// contradict an answer.
type Penalty struct {
	Candidate string
	Question  string
	Amount    int
}

// Outcome is the result of applying one answer.
type Outcome struct {
	Ranking     Ranking
	Asked       AskedSet
	Resolutions []Resolution
	Penalties   []Penalty
	// Settled lists texts marked asked because a candidate's dependency on
	// an answered question was contradicted. They are never scored.
	Settled []string
}

// Skipped reports whether the answered question was already settled and
// nothing changed.
func (o Outcome) Skipped() bool {
	return len(o.Resolutions) == 0
}

// Processor applies answers to a ranking, following question dependencies.
type Processor struct {
	bank   *questionbank.Bank
	logger *zap.Logger
}

// NewProcessor creates a processor over bank. A nil logger disables logging.
func NewProcessor(bank *questionbank.Bank, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{bank: bank, logger: logger}
}

// propagation carries the working state through one Apply call.
type propagation struct {
	ranking Ranking
	asked   AskedSet
	out     *Outcome
}

// Apply scores the answer to text against every candidate and resolves the
// questions it implies. ranking and asked are not modified. If text is
// already in asked, the returned Outcome holds unchanged copies.
func (p *Processor) Apply(ranking Ranking, asked AskedSet, text string, delta int) (Outcome, error) {
	if delta < -MaxDelta || delta > MaxDelta {
		return Outcome{}, fmt.Errorf("apply %q: %w: %d", text, ErrDeltaOutOfRange, delta)
	}

	out := Outcome{}
	st := &propagation{
		ranking: ranking.Clone(),
		asked:   asked.Clone(),
		out:     &out,
	}
	if st.asked.Has(text) {
		p.logger.Debug("answer skipped, question already settled", zap.String("question", text))
		out.Ranking, out.Asked = st.ranking, st.asked
		return out, nil
	}

	p.resolve(st, text, delta, false, 0)

	st.ranking.Sort()
	out.Ranking, out.Asked = st.ranking, st.asked
	p.logger.Debug("answer applied",
		zap.String("question", text),
		zap.Int("delta", delta),
		zap.Int("resolved", len(out.Resolutions)),
		zap.Int("penalties", len(out.Penalties)),
	)
	return out, nil
}

func (p *Processor) resolve(st *propagation, text string, delta int, implied bool, depth int) {
	// Mark first so a dependency chain that leads back here stops.
	st.asked.Add(text)
	st.out.Resolutions = append(st.out.Resolutions, Resolution{
		Question: text,
		Delta:    delta,
		Implied:  implied,
		Depth:    depth,
	})

	magnitude := abs(delta)
	next := make(questionbank.Dependencies)

	for i := range st.ranking {
		id := st.ranking[i].Candidate

		base := 0
		if q, ok := p.bank.Question(id, text); ok {
			base = delta
			if delta > 0 {
				// Higher-ranked candidates claim an implied text first.
				for target, exp := range q.Dependencies {
					if _, seen := next[target]; !seen {
						next[target] = exp
					}
				}
			}
		}
		st.ranking[i].Score += float64(base)

		reqs := p.bank.RequirementsOn(id, text)
		conflict := false
		for _, r := range reqs {
			if r.Expect.Conflicts(delta) {
				conflict = true
				break
			}
		}
		if !conflict {
			continue
		}

		st.ranking[i].Score -= float64(magnitude)
		st.out.Penalties = append(st.out.Penalties, Penalty{
			Candidate: id,
			Question:  text,
			Amount:    magnitude,
		})
		for _, r := range reqs {
			if st.asked.Has(r.Question) {
				continue
			}
			st.asked.Add(r.Question)
			st.out.Settled = append(st.out.Settled, r.Question)
		}
	}

	targets := make([]string, 0, len(next))
	for t := range next {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	for _, t := range targets {
		if st.asked.Has(t) {
			continue
		}
		st.ranking.Sort()
		p.resolve(st, t, next[t].Sign()*magnitude, true, depth+1)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
