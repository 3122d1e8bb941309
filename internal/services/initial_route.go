package services

import (
	"load-route-service/internal/domain"
	"math/rand"
)

// InitialRoute builds a starting route by walking loads in the given order and
// closing the current driver's segment whenever appending the next load would
// push it over capacity.
//
// This is greedy first-fit over a fixed permutation. A load that alone exceeds
// capacity is still placed, as its own infeasible segment; the penalty in the
// cost model deals with it later.
func (m CostModel) InitialRoute(loads []domain.Load) domain.Route {
	route := make(domain.Route, 0, 2*len(loads)+2)
	route = append(route, domain.Depot)
	if len(loads) == 0 {
		return append(route, domain.Depot)
	}

	route = append(route, loads[0])
	running := loads[0].RoundTripCost()

	for i := 1; i < len(loads); i++ {
		prev, curr := loads[i-1], loads[i]

		// Cost of the segment if curr were appended: drop prev's return leg,
		// drive to curr, serve it, and return from its end.
		next := running - prev.ReturnCost + domain.Distance(prev.End, curr.Start) + curr.LoadCost + curr.ReturnCost
		if next > m.Capacity {
			route = append(route, domain.Depot)
			running = curr.RoundTripCost()
		} else {
			running = next
		}
		route = append(route, curr)
	}

	return append(route, domain.Depot)
}

// ShuffledInitialRoute shuffles a copy of loads with rng and builds the
// initial route from that permutation. loads is left untouched.
func (m CostModel) ShuffledInitialRoute(loads []domain.Load, rng *rand.Rand) domain.Route {
	perm := make([]domain.Load, len(loads))
	copy(perm, loads)
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return m.InitialRoute(perm)
}
