package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

// Table names.
const (
	gamesTable   = "games"
	answersTable = "answer_events"
	counterTable = "event_counter"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL UNIQUE,
		outcome TEXT NOT NULL,
		candidate_id TEXT NOT NULL DEFAULT '',
		revealed_id TEXT NOT NULL DEFAULT '',
		reveal TEXT NOT NULL DEFAULT '',
		rounds INTEGER NOT NULL,
		guesses INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		played_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS games_played_at ON games (played_at)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer INTEGER NOT NULL,
		resolved INTEGER NOT NULL,
		settled INTEGER NOT NULL,
		penalized INTEGER NOT NULL,
		answered_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS event_counter (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_sequence INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO event_counter (id, last_sequence) VALUES (1, 0)`,
}

// migrate creates every table and index that does not exist yet, and the
// single counter row.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		var res sql.Result
		if err := drv.Exec(ctx, stmt, []any{}, &res); err != nil {
			head, _, _ := strings.Cut(stmt, "\n")
			return fmt.Errorf("exec %q: %w", head, err)
		}
	}
	return nil
}
