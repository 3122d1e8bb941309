package services

import (
	"context"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/ports"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateLoad = errors.New("duplicate load id")

	// ErrDepotLoad rejects a load that is indistinguishable from the depot
	// sentinel (id 0 from origin to origin); a route could not tell them apart.
	ErrDepotLoad = errors.New("load is indistinguishable from the depot")
)

type PlanRoutesRequest struct {
	Cost     CostModel
	Schedule Schedule
	Seed     int64
	Restarts int

	// Progress receives per-iteration updates tagged with the restart number.
	// With more than one restart it is called from several goroutines.
	Progress func(restart int, p Progress)
}

// PlanResult is the winning solution plus statistics summed over restarts.
type PlanResult struct {
	Solution      domain.Solution
	Seed          int64
	Restart       int
	Restarts      int
	LoadCount     int
	InitialCost   float64
	Iterations    int
	Evaluations   int
	Improvements  int
	Stalls        int
	Duration      time.Duration
}

// PlanRoutes loads the instance and anneals it.
//
// Each restart is an independent, single-threaded run with its own rng,
// initial permutation and working routes; restarts only run side by side.
// The cheapest best route wins and ties go to the lowest restart number, so
// the outcome depends on the seed alone.
func PlanRoutes(
	ctx context.Context,
	req PlanRoutesRequest,
	repo ports.LoadRepository,
) (*PlanResult, error) {
	start := time.Now()

	loads, err := repo.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan routes: list loads: %w", err)
	}

	seen := make(map[int]struct{}, len(loads))
	for _, l := range loads {
		if l.IsDepot() {
			return nil, fmt.Errorf("plan routes: load_id=%d: %w", l.ID, ErrDepotLoad)
		}
		if _, ok := seen[l.ID]; ok {
			return nil, fmt.Errorf("plan routes: load_id=%d: %w", l.ID, ErrDuplicateLoad)
		}
		seen[l.ID] = struct{}{}
	}

	restarts := req.Restarts
	if restarts < 1 {
		restarts = 1
	}

	out := &PlanResult{
		Seed:      req.Seed,
		Restarts:  restarts,
		LoadCount: len(loads),
	}
	if len(loads) == 0 {
		out.Solution = domain.Solution{Route: domain.NewRoute()}
		out.Duration = time.Since(start)
		return out, nil
	}

	results := make([]Result, restarts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for r := 0; r < restarts; r++ {
		r := r
		g.Go(func() error {
			rng := rand.New(rand.NewSource(RestartSeed(req.Seed, r)))

			annealer, err := NewAnnealer(req.Cost, req.Schedule, rng)
			if err != nil {
				return fmt.Errorf("plan routes: restart %d: %w", r, err)
			}
			if req.Progress != nil {
				annealer.Progress = func(p Progress) { req.Progress(r, p) }
			}

			initial := req.Cost.ShuffledInitialRoute(loads, rng)
			res, err := annealer.Run(gctx, initial)
			if err != nil {
				return fmt.Errorf("plan routes: restart %d: %w", r, err)
			}

			results[r] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	winner := 0
	for r, res := range results {
		out.Iterations += res.Iterations
		out.Evaluations += res.Evaluations
		out.Improvements += res.Improvements
		out.Stalls += res.Stalls
		if res.BestCost < results[winner].BestCost {
			winner = r
		}
	}

	best := results[winner]
	if err := best.Best.Validate(loads); err != nil {
		return nil, fmt.Errorf("plan routes: restart %d produced a broken route: %w", winner, err)
	}

	b := req.Cost.Breakdown(best.Best)
	out.Solution = domain.Solution{
		Route:        best.Best,
		Cost:         b.Total,
		DistanceCost: b.DistanceCost,
		Drivers:      b.Drivers,
		Infeasible:   b.Infeasible,
	}
	out.Restart = winner
	out.InitialCost = best.InitialCost
	out.Duration = time.Since(start)

	return out, nil
}
