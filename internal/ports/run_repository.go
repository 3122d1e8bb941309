package ports

import (
	"context"
	"load-route-service/internal/domain"
)

// Port: persistence for the history of completed solves.
type RunRepository interface {
	// Store one completed run.
	SaveRun(ctx context.Context, run domain.Run) error
	// Return the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}
