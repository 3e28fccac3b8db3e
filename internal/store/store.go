package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// PersistenceError wraps a failure of the backing store. Missing state
// is not an error; an absent database loads as empty progress.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("progress store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store owns the SQLite database and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "apply pragmas", Err: err}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "create schema", Err: err}
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProgressRepo returns the unit progress repository backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{db: s.db}
}

// EventRepo returns the event log repository backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// StatsRepo returns the theme stats repository backed by this store.
func (s *Store) StatsRepo() StatsRepo {
	return &statsRepo{db: s.db}
}

// applyPragmas configures SQLite for single-learner use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS unit_progress (
	theme        TEXT NOT NULL,
	question     TEXT NOT NULL,
	streak       INTEGER NOT NULL DEFAULT 0,
	last_attempt TEXT NOT NULL DEFAULT '',
	mastered     INTEGER NOT NULL DEFAULT 0,
	correct      INTEGER NOT NULL DEFAULT 0,
	wrong        INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (theme, question)
);

CREATE TABLE IF NOT EXISTS theme_stats (
	theme    TEXT PRIMARY KEY,
	flames   INTEGER NOT NULL DEFAULT 0,
	attempts INTEGER NOT NULL DEFAULT 0,
	correct  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS session_events (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL,
	theme           TEXT NOT NULL,
	action          TEXT NOT NULL,
	units_planned   INTEGER NOT NULL DEFAULT 0,
	units_attempted INTEGER NOT NULL DEFAULT 0,
	units_correct   INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempt_events (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL,
	theme        TEXT NOT NULL,
	question     TEXT NOT NULL,
	correct      INTEGER NOT NULL,
	streak_after INTEGER NOT NULL,
	mastered     INTEGER NOT NULL,
	hints_used   INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RECALL_DB environment variable
// 2. $XDG_DATA_HOME/recall/recall.db
// 3. ~/.local/share/recall/recall.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RECALL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "recall", "recall.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
