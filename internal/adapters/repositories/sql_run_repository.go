package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"time"
)

// SQLRunRepository is a Postgres-backed RunRepository (pgx stdlib driver).
type SQLRunRepository struct {
	DB *sql.DB
}

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// Store one completed run. Saving the same run id again overwrites it.
func (s *SQLRunRepository) SaveRun(ctx context.Context, run domain.Run) (err error) {
	defer obs.Time(ctx, "runs.sql.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: DB is nil")
	}
	if run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	segments, err := json.Marshal(run.Segments)
	if err != nil {
		return fmt.Errorf("save run %s: encode segments: %w", run.ID, err)
	}

	q := `
	INSERT INTO runs (
		run_id, source, seed, restarts, load_count, total_cost, drivers,
		segments, iterations, evaluations, started_at, duration_ms
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12)
	ON CONFLICT (run_id) DO UPDATE
	SET total_cost = EXCLUDED.total_cost,
		drivers = EXCLUDED.drivers,
		segments = EXCLUDED.segments,
		iterations = EXCLUDED.iterations,
		evaluations = EXCLUDED.evaluations,
		duration_ms = EXCLUDED.duration_ms;
	`
	_, err = s.DB.ExecContext(ctx, q,
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
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert: %w", run.ID, err)
	}

	return nil
}

// Return the most recent runs, newest first.
func (s *SQLRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.Run, err error) {
	defer obs.Time(ctx, "runs.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	q := `
	SELECT run_id, source, seed, restarts, load_count, total_cost, drivers,
		segments::text, iterations, evaluations, started_at, duration_ms
	FROM runs
	ORDER BY started_at DESC
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			run        domain.Run
			segments   string
			durationMS int64
		)
		if err := rows.Scan(
			&run.ID, &run.Source, &run.Seed, &run.Restarts, &run.LoadCount, &run.Cost, &run.Drivers,
			&segments, &run.Iterations, &run.Evaluations, &run.StartedAt, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan rows: %w", err)
		}
		if err := json.Unmarshal([]byte(segments), &run.Segments); err != nil {
			return nil, fmt.Errorf("list runs: run %s: decode segments: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}
