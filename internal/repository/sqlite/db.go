package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database at the given path and applies the schema.
// If path is ":memory:", the pool is pinned to a single connection so every
// caller shares the same in-memory database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Migrate runs all schema migrations. Each statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS issues (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		project     TEXT NOT NULL,
		issue_title TEXT NOT NULL,
		issue_text  TEXT NOT NULL,
		created_by  TEXT NOT NULL,
		assigned_to TEXT NOT NULL DEFAULT '',
		status_text TEXT NOT NULL DEFAULT '',
		open        INTEGER NOT NULL DEFAULT 1,
		created_on  TEXT NOT NULL,
		updated_on  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project, seq)`,
}
