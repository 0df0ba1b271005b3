// Package relational implements the plan backend on a relational store.
// It is the fallback driver for deployments without a search-indexed
// document store; filtering degrades to substring predicates.
package relational

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS business_plans (
	id                    TEXT PRIMARY KEY,
	title                 TEXT NOT NULL DEFAULT '',
	executive_summary     TEXT NOT NULL DEFAULT '',
	problem               TEXT NOT NULL DEFAULT '',
	solution              TEXT NOT NULL DEFAULT '',
	market_analysis       TEXT NOT NULL DEFAULT '',
	competition           TEXT NOT NULL DEFAULT '',
	marketing_strategy    TEXT NOT NULL DEFAULT '',
	management_team       TEXT NOT NULL DEFAULT '',
	financial_projections TEXT NOT NULL DEFAULT '',
	industry              TEXT NOT NULL DEFAULT '',
	sentiment             TEXT NOT NULL DEFAULT '',
	technology_stack      TEXT NOT NULL DEFAULT '',
	geographic_relevance  TEXT NOT NULL DEFAULT '',
	market_size           REAL NOT NULL DEFAULT 0,
	required_capital      REAL NOT NULL DEFAULT 0,
	time_to_market        REAL NOT NULL DEFAULT 0,
	total_ups             INTEGER NOT NULL DEFAULT 0,
	total_downs           INTEGER NOT NULL DEFAULT 0,
	created_at            INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_business_plans_created_at ON business_plans (created_at);
CREATE INDEX IF NOT EXISTS idx_business_plans_total_ups ON business_plans (total_ups);
`

// Open opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations automatically.
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

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Migrate creates the plans table and its sort indexes if missing.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
