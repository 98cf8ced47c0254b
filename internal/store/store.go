// Package store keeps the game log: one row per finished game and one per
// answer, in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// pragmas tune SQLite for a single local writer. WAL lets the history
// screen read while a game is being recorded.
var pragmas = []struct{ name, value string }{
	{"journal_mode", "WAL"},
	{"busy_timeout", "5000"},
	{"foreign_keys", "ON"},
	{"synchronous", "NORMAL"},
}

// Store owns the database handle.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open connects to the SQLite database at dsn, which may be a file path or
// a file: URI, and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	drv := entsql.OpenDB(dialect.SQLite, db)

	s, err := prepare(context.Background(), db, drv)
	if err != nil {
		drv.Close()
		return nil, err
	}
	return s, nil
}

func prepare(ctx context.Context, db *sql.DB, drv *entsql.Driver) (*Store, error) {
	for _, p := range pragmas {
		stmt := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("pragma %s: %w", p.name, err)
		}
	}
	if err := migrate(ctx, drv); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, drv: drv}, nil
}

// DB exposes the raw handle for diagnostics and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns the game log repository.
func (s *Store) EventRepo() *EventRepo {
	return &EventRepo{drv: s.drv}
}
