package services

import (
	"load-route-service/internal/domain"
	"time"
)

// NewRun turns a finished plan into its history record.
func NewRun(id, source string, startedAt time.Time, res *PlanResult) domain.Run {
	return domain.Run{
		ID:          id,
		Source:      source,
		Seed:        res.Seed,
		Restarts:    res.Restarts,
		LoadCount:   res.LoadCount,
		Cost:        res.Solution.Cost,
		Drivers:     res.Solution.Drivers,
		Segments:    res.Solution.Segments(),
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		StartedAt:   startedAt,
		Duration:    res.Duration,
	}
}
