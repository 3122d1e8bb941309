package services

import (
	"context"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"math"
	"math/rand"
	"time"
)

// Progress is reported once per outer iteration.
type Progress struct {
	Iteration   int
	Temperature float64
	CurrentCost float64
	BestCost    float64
}

// Result of one annealing run.
type Result struct {
	Best          domain.Route
	BestCost      float64
	InitialCost   float64
	FinalTemp     float64
	Iterations    int
	Evaluations   int
	Improvements  int // outer iterations that lowered the best cost
	Stalls        int // outer iterations whose batch found nothing cheaper than current
	Duration      time.Duration
}

// Annealer runs simulated annealing over swap moves.
//
// Each outer iteration clones the current route once and hill-climbs on that
// copy for InnerMoves swaps, keeping a swap only if it lowers the batch's best
// cost. The batch result then replaces the current route if cheaper, or with
// the Metropolis probability exp(-(delta)/T) if not.
//
// An Annealer is not safe for concurrent use; Rng is consumed by every run.
type Annealer struct {
	Cost     CostModel
	Schedule Schedule
	Rng      *rand.Rand
	Progress func(Progress)
}

func NewAnnealer(cost CostModel, schedule Schedule, rng *rand.Rand) (*Annealer, error) {
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("new annealer: %w", err)
	}
	if rng == nil {
		return nil, errors.New("new annealer: rng must be non-nil")
	}
	return &Annealer{Cost: cost, Schedule: schedule, Rng: rng}, nil
}

// Run anneals starting from initial, which is not modified. The context is
// checked between outer iterations; on cancellation the best route found so
// far is returned together with the context error.
func (a *Annealer) Run(ctx context.Context, initial domain.Route) (Result, error) {
	start := time.Now()

	if err := a.Schedule.Validate(); err != nil {
		return Result{}, fmt.Errorf("anneal: %w", err)
	}
	if a.Rng == nil {
		return Result{}, errors.New("anneal: rng must be non-nil")
	}

	initialCost := a.Cost.Evaluate(initial)
	tracker := NewTracker(initial, initialCost)
	temp := a.Schedule.InitialTemp
	res := Result{InitialCost: initialCost}

	// Without an interior entry there is nothing to swap.
	if len(initial) < 3 {
		return a.finish(res, tracker, temp, start), nil
	}

	for iter := 0; iter < a.Schedule.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return a.finish(res, tracker, temp, start), fmt.Errorf("anneal: stopped after %d iterations: %w", iter, err)
		}

		candidate, candidateCost := a.batch(tracker)
		res.Iterations++
		res.Evaluations += a.Schedule.InnerMoves

		if candidateCost >= tracker.CurrentCost() {
			res.Stalls++
		}
		if _, improvedBest := a.accept(tracker, candidate, candidateCost, temp); improvedBest {
			res.Improvements++
		}

		temp *= a.Schedule.Alpha

		if a.Progress != nil {
			a.Progress(Progress{
				Iteration:   iter + 1,
				Temperature: temp,
				CurrentCost: tracker.CurrentCost(),
				BestCost:    tracker.BestCost(),
			})
		}
	}

	return a.finish(res, tracker, temp, start), nil
}

// accept applies the Metropolis rule to candidate: a cheaper candidate always
// replaces current, any other one with probability exp((current-candidate)/temp).
// An equal-cost candidate is therefore always adopted.
func (a *Annealer) accept(t *Tracker, candidate domain.Route, candidateCost, temp float64) (adopted, improvedBest bool) {
	currentCost := t.CurrentCost()
	if candidateCost < currentCost {
		return true, t.Adopt(candidate, candidateCost)
	}
	if math.Exp((currentCost-candidateCost)/temp) > a.Rng.Float64() {
		return true, t.Adopt(candidate, candidateCost)
	}
	return false, false
}

// batch hill-climbs on a private copy of the current route and returns the
// copy with its cost. A swap survives only if it is strictly cheaper than
// everything seen in the batch so far; the rest are undone in place. The
// result therefore never costs more than current.
func (a *Annealer) batch(t *Tracker) (domain.Route, float64) {
	working, bestCost := t.Current()

	for k := 0; k < a.Schedule.InnerMoves; k++ {
		mv := RandomSwap(a.Rng, working)
		mv.Apply(working)

		cost := a.Cost.Evaluate(working)
		if cost < bestCost {
			bestCost = cost
			continue
		}
		mv.Undo(working)
	}

	return working, bestCost
}

func (a *Annealer) finish(res Result, t *Tracker, temp float64, start time.Time) Result {
	res.Best, res.BestCost = t.Best()
	res.FinalTemp = temp
	res.Duration = time.Since(start)
	return res
}
