package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite run-history schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		seed INTEGER NOT NULL,
		restarts INTEGER NOT NULL,
		load_count INTEGER NOT NULL,
		total_cost REAL NOT NULL,
		drivers INTEGER NOT NULL,
		segments TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_runs_started_at
	ON runs(started_at);
	`,
	})
}

// Initialize the Postgres run-history schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		seed BIGINT NOT NULL,
		restarts INTEGER NOT NULL,
		load_count INTEGER NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		drivers INTEGER NOT NULL,
		segments JSONB NOT NULL,
		iterations INTEGER NOT NULL,
		evaluations BIGINT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		duration_ms BIGINT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_runs_started_at
	ON runs(started_at DESC);
	`,
	})
}

func initSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
