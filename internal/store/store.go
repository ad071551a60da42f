package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"lyricsync/internal/config"
	"lyricsync/internal/failures"
)

// Store persists the canonical catalog, lyric metrics, and word frequencies.
// Every write is a natural-key upsert, so replaying a run converges on the
// same rows.
type Store struct {
	db      *sql.DB
	dialect dialect
	target  string
}

// Open connects to the configured backend and creates the schema when needed.
func Open(ctx context.Context, cfg config.Database) (*Store, error) {
	d := dialectFor(cfg.Driver)
	target := cfg.ConnString()
	if d == dialectSQLite {
		if strings.TrimSpace(target) == "" {
			return nil, failures.Wrap(failures.ErrConfiguration, "store", "open", "sqlite dsn is empty", nil)
		}
		if dir := filepath.Dir(target); dir != "" && !strings.HasPrefix(target, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, failures.Wrap(failures.ErrPersistence, "store", "open", "create database directory", err)
			}
		}
	}

	db, err := sql.Open(cfg.DriverName(), target)
	if err != nil {
		return nil, failures.Wrap(failures.ErrPersistence, "store", "open", cfg.Redacted(), err)
	}

	if d == dialectSQLite {
		// Pragmas are per connection; a single connection keeps them in force
		// and serializes writers.
		db.SetMaxOpenConns(1)
		busy := cfg.BusyTimeoutMS
		if busy <= 0 {
			busy = 5000
		}
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA foreign_keys = ON",
			fmt.Sprintf("PRAGMA busy_timeout = %d", busy),
		}
		for _, pragma := range pragmas {
			if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
				_ = db.Close()
				return nil, failures.Wrap(failures.ErrPersistence, "store", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
			}
		}
	} else if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, failures.Wrap(failures.ErrPersistence, "store", "open", "connect "+cfg.Redacted(), err)
	}

	store := &Store{db: db, dialect: d, target: cfg.Redacted()}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, failures.Wrap(failures.ErrPersistence, "store", "open", "initialize schema", err)
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Target describes the connected database with credentials masked.
func (s *Store) Target() string {
	return s.target
}

// Dialect reports the backend in use: "sqlite" or "postgres".
func (s *Store) Dialect() string {
	return string(s.dialect)
}
