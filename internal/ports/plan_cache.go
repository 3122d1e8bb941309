package ports

import "context"

// PlanCache stores finished solves by a key that covers everything deciding
// their outcome (loads, seed, restarts, cost model, schedule).
type PlanCache interface {
	// GetPlan returns the cached driver segments; ok is false on a miss.
	GetPlan(ctx context.Context, key string) (segments [][]int, ok bool, err error)
	PutPlan(ctx context.Context, key string, segments [][]int) error
}
