package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"time"
)

// Fixed-width UTC timestamps so that text ordering is time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite-backed implementation of the RunRepository port.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

// Store one completed run.
func (s *SqliteRunRepository) SaveRun(ctx context.Context, run domain.Run) error {
	if s.DB == nil {
		return errors.New("sqlite run repository: DB is nil")
	}
	if run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	segments, err := json.Marshal(run.Segments)
	if err != nil {
		return fmt.Errorf("save run %s: encode segments: %w", run.ID, err)
	}

	query := `
	INSERT OR REPLACE INTO runs (
		run_id,
		source,
		seed,
		restarts,
		load_count,
		total_cost,
		drivers,
		segments,
		iterations,
		evaluations,
		started_at,
		duration_ms
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		run.ID,
		run.Source,
		run.Seed,
		run.Restarts,
		run.LoadCount,
		run.Cost,
		run.Drivers,
		string(segments),
		run.Iterations,
		run.Evaluations,
		run.StartedAt.UTC().Format(sqliteTimeLayout),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert: %w", run.ID, err)
	}

	return nil
}

// Return the most recent runs, newest first.
func (s *SqliteRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT
		run_id,
		source,
		seed,
		restarts,
		load_count,
		total_cost,
		drivers,
		segments,
		iterations,
		evaluations,
		started_at,
		duration_ms
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			run        domain.Run
			segments   string
			startedAt  string
			durationMS int64
		)
		err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Seed,
			&run.Restarts,
			&run.LoadCount,
			&run.Cost,
			&run.Drivers,
			&segments,
			&run.Iterations,
			&run.Evaluations,
			&startedAt,
			&durationMS,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(segments), &run.Segments); err != nil {
			return nil, fmt.Errorf("list runs: run %s: decode segments: %w", run.ID, err)
		}
		run.StartedAt, err = time.Parse(sqliteTimeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: run %s: parse started_at: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
