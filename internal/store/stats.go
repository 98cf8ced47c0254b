package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/guessr/internal/session"
)

// topN is how many candidates Stats lists per ranking.
const topN = 5

// CandidateCount pairs a candidate with a tally.
type CandidateCount struct {
	CandidateID string
	Count       int
}

// Stats summarizes the game log.
type Stats struct {
	Games       int
	Answers     int
	ByOutcome   map[session.Outcome]int
	MeanRounds  float64
	MeanGuesses float64
	// TopGuessed lists candidates most often guessed correctly.
	TopGuessed []CandidateCount
	// TopMissed lists candidates players revealed after the engine failed.
	TopMissed []CandidateCount
}

// WinRate returns the share of games ending in a correct guess.
func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.ByOutcome[session.OutcomeCorrect]) / float64(s.Games)
}

// Stats computes aggregate figures over every recorded game.
func (r *EventRepo) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByOutcome: make(map[session.Outcome]int)}
	b := sqlite()

	// Outcomes.
	query, args := b.Select("outcome", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(gamesTable)).
		GroupBy("outcome").
		Query()
	err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return err
		}
		st.ByOutcome[session.Outcome(outcome)] = n
		st.Games += n
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("count outcomes: %w", err)
	}

	// Means.
	query, args = b.Select(entsql.As(entsql.Avg("rounds"), "rounds"), entsql.As(entsql.Avg("guesses"), "guesses")).
		From(b.Table(gamesTable)).
		Query()
	err = r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var rounds, guesses sql.NullFloat64
		if err := rows.Scan(&rounds, &guesses); err != nil {
			return err
		}
		st.MeanRounds, st.MeanGuesses = rounds.Float64, guesses.Float64
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("average rounds: %w", err)
	}

	// Answers.
	query, args = b.Select(entsql.Count("*")).From(b.Table(answersTable)).Query()
	err = r.each(ctx, query, args, func(rows *entsql.Rows) error {
		return rows.Scan(&st.Answers)
	})
	if err != nil {
		return Stats{}, fmt.Errorf("count answers: %w", err)
	}

	st.TopGuessed, err = r.topCandidates(ctx, "candidate_id",
		entsql.EQ("outcome", string(session.OutcomeCorrect)))
	if err != nil {
		return Stats{}, fmt.Errorf("top guessed: %w", err)
	}
	st.TopMissed, err = r.topCandidates(ctx, "revealed_id", entsql.And(
		entsql.In("outcome", string(session.OutcomeExhausted), string(session.OutcomeGaveUp)),
		entsql.NEQ("revealed_id", ""),
	))
	if err != nil {
		return Stats{}, fmt.Errorf("top missed: %w", err)
	}
	return st, nil
}

func (r *EventRepo) topCandidates(ctx context.Context, column string, where *entsql.Predicate) ([]CandidateCount, error) {
	b := sqlite()
	query, args := b.Select(column, entsql.As(entsql.Count("*"), "n")).
		From(b.Table(gamesTable)).
		Where(where).
		GroupBy(column).
		OrderBy(entsql.Desc("n"), column).
		Limit(topN).
		Query()

	var out []CandidateCount
	err := r.each(ctx, query, args, func(rows *entsql.Rows) error {
		var c CandidateCount
		if err := rows.Scan(&c.CandidateID, &c.Count); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// each runs a query and calls fn for every row.
func (r *EventRepo) each(ctx context.Context, query string, args []any, fn func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
