package services

import (
	"load-route-service/internal/domain"
	"math/rand"
)

// Move swaps the route entries at positions I and J. Applying it twice restores
// the route, so Undo is Apply.
type Move struct {
	I, J int
}

// RandomSwap picks two interior positions of r uniformly and independently.
// The boundary depots are never chosen; the positions may be equal and may
// point at interior depots, which moves a segment boundary.
// r must hold at least one interior entry.
func RandomSwap(rng *rand.Rand, r domain.Route) Move {
	interior := len(r) - 2
	return Move{
		I: 1 + rng.Intn(interior),
		J: 1 + rng.Intn(interior),
	}
}

// Apply performs the swap in place.
func (mv Move) Apply(r domain.Route) {
	r.Swap(mv.I, mv.J)
}

// Undo reverts a previous Apply of the same move.
func (mv Move) Undo(r domain.Route) {
	r.Swap(mv.I, mv.J)
}
