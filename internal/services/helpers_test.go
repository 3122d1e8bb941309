package services

import (
	"load-route-service/internal/domain"
	"math/rand"
)

func squareLoads() (a, b, c domain.Load) {
	a = domain.NewLoad(1, domain.Point{X: 0, Y: 0}, domain.Point{X: 10, Y: 0})
	b = domain.NewLoad(2, domain.Point{X: 10, Y: 0}, domain.Point{X: 10, Y: 10})
	c = domain.NewLoad(3, domain.Point{X: 0, Y: 10}, domain.Point{X: 0, Y: 0})
	return a, b, c
}

// randomLoads returns n loads with ids 1..n spread over a 300x300 square
// centred on the depot.
func randomLoads(rng *rand.Rand, n int) []domain.Load {
	coord := func() float64 { return rng.Float64()*300 - 150 }

	loads := make([]domain.Load, 0, n)
	for i := 1; i <= n; i++ {
		start := domain.Point{X: coord(), Y: coord()}
		end := domain.Point{X: coord(), Y: coord()}
		loads = append(loads, domain.NewLoad(i, start, end))
	}
	return loads
}

func quickSchedule() Schedule {
	s := DefaultSchedule()
	s.Iterations = 200
	return s
}
