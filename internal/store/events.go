package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/guessr/internal/session"
)

// GameRow is one finished game as stored.
type GameRow struct {
	Sequence    int64
	SessionID   string
	Outcome     session.Outcome
	CandidateID string
	RevealedID  string
	Reveal      string
	Rounds      int
	Guesses     int
	Duration    time.Duration
	PlayedAt    time.Time
}

// AnswerRow is one answer as stored.
type AnswerRow struct {
	Sequence   int64
	SessionID  string
	Round      int
	Question   string
	Answer     int
	Resolved   int
	Settled    int
	Penalized  int
	AnsweredAt time.Time
}

// EventRepo records games and answers. It implements session.Recorder.
// Games and answers draw from one sequence, so rows of both tables can be
// put back in the order they were written.
type EventRepo struct {
	drv *entsql.Driver
}

var _ session.Recorder = (*EventRepo)(nil)

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *EventRepo) exec(ctx context.Context, query string, args []any) error {
	var res sql.Result
	return r.drv.Exec(ctx, query, args, &res)
}

// nextSequence bumps the counter row and returns the new value. The single
// UPDATE ... RETURNING statement is atomic, so concurrent writers never
// share a number.
func (r *EventRepo) nextSequence(ctx context.Context) (int64, error) {
	query := `UPDATE ` + counterTable + ` SET last_sequence = last_sequence + 1 WHERE id = 1 RETURNING last_sequence`

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, []any{}, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, sql.ErrNoRows
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, err
	}
	return seq, rows.Err()
}

// RecordGame appends a finished game.
func (r *EventRepo) RecordGame(ctx context.Context, rec session.GameRecord) error {
	seq, err := r.nextSequence(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(gamesTable).
		Columns("sequence", "session_id", "outcome", "candidate_id", "revealed_id", "reveal",
			"rounds", "guesses", "duration_ms", "played_at").
		Values(seq, rec.SessionID, string(rec.Outcome), rec.Candidate, rec.Revealed, rec.Reveal,
			rec.Rounds, rec.Guesses, rec.Duration.Milliseconds(), rec.PlayedAt.UnixMilli()).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// RecordAnswer appends one answer.
func (r *EventRepo) RecordAnswer(ctx context.Context, rec session.AnswerRecord) error {
	seq, err := r.nextSequence(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(answersTable).
		Columns("sequence", "session_id", "round", "question", "answer",
			"resolved", "settled", "penalized", "answered_at").
		Values(seq, rec.SessionID, rec.Round, rec.Question, rec.Answer,
			rec.Resolved, rec.Settled, rec.Penalized, rec.At.UnixMilli()).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// RecentGames returns up to limit games, newest first. A limit of zero
// returns all of them.
func (r *EventRepo) RecentGames(ctx context.Context, limit int) ([]GameRow, error) {
	b := sqlite()
	sel := b.Select("sequence", "session_id", "outcome", "candidate_id", "revealed_id", "reveal",
		"rounds", "guesses", "duration_ms", "played_at").
		From(b.Table(gamesTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var (
			g                  GameRow
			outcome            string
			durationMs, played int64
		)
		if err := rows.Scan(&g.Sequence, &g.SessionID, &outcome, &g.CandidateID, &g.RevealedID, &g.Reveal,
			&g.Rounds, &g.Guesses, &durationMs, &played); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Outcome = session.Outcome(outcome)
		g.Duration = time.Duration(durationMs) * time.Millisecond
		g.PlayedAt = time.UnixMilli(played).UTC()
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	return out, nil
}

// Answers returns a session's answers in the order they were given.
func (r *EventRepo) Answers(ctx context.Context, sessionID string) ([]AnswerRow, error) {
	b := sqlite()
	query, args := b.Select("sequence", "session_id", "round", "question", "answer",
		"resolved", "settled", "penalized", "answered_at").
		From(b.Table(answersTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRow
	for rows.Next() {
		var (
			a  AnswerRow
			at int64
		)
		if err := rows.Scan(&a.Sequence, &a.SessionID, &a.Round, &a.Question, &a.Answer,
			&a.Resolved, &a.Settled, &a.Penalized, &at); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.AnsweredAt = time.UnixMilli(at).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return out, nil
}

// Reset deletes every recorded game and answer.
func (r *EventRepo) Reset(ctx context.Context) error {
	for _, table := range []string{answersTable, gamesTable} {
		query, args := sqlite().Delete(table).Query()
		if err := r.exec(ctx, query, args); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	query, args := sqlite().Update(counterTable).
		Set("last_sequence", 0).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		return fmt.Errorf("reset sequence: %w", err)
	}
	return nil
}
