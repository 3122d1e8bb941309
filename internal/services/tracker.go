package services

import "load-route-service/internal/domain"

// Tracker holds the search's working solution and the best one seen.
// Both routes are owned copies; callers get clones.
type Tracker struct {
	current     domain.Route
	currentCost float64
	best        domain.Route
	bestCost    float64
}

func NewTracker(initial domain.Route, cost float64) *Tracker {
	return &Tracker{
		current:     initial.Clone(),
		currentCost: cost,
		best:        initial.Clone(),
		bestCost:    cost,
	}
}

// Current returns a copy of the working route and its cost.
func (t *Tracker) Current() (domain.Route, float64) {
	return t.current.Clone(), t.currentCost
}

// Best returns a copy of the best route and its cost.
func (t *Tracker) Best() (domain.Route, float64) {
	return t.best.Clone(), t.bestCost
}

func (t *Tracker) CurrentCost() float64 { return t.currentCost }

func (t *Tracker) BestCost() float64 { return t.bestCost }

// Adopt makes candidate the working route. It also becomes the best route
// when strictly cheaper than the best so far. Adopt takes ownership of
// candidate; the caller must not mutate it afterwards.
func (t *Tracker) Adopt(candidate domain.Route, cost float64) (improvedBest bool) {
	t.current = candidate
	t.currentCost = cost
	if cost < t.bestCost {
		t.best = candidate.Clone()
		t.bestCost = cost
		return true
	}
	return false
}
