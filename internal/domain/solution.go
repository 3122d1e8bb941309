package domain

import "time"

// Represents the best route found by a solve together with its cost breakdown.
// It is read-only output data.
type Solution struct {
	Route        Route
	Cost         float64
	DistanceCost float64
	Drivers      int
	Infeasible   int // segments over capacity
}

// Segments returns the load ids of every driver in route order.
func (s Solution) Segments() [][]int {
	segs := s.Route.Segments()
	out := make([][]int, 0, len(segs))
	for _, seg := range segs {
		out = append(out, seg.IDs())
	}
	return out
}

// Run is the recorded history entry of one solve.
type Run struct {
	ID          string
	Source      string
	Seed        int64
	Restarts    int
	LoadCount   int
	Cost        float64
	Drivers     int
	Segments    [][]int
	Iterations  int
	Evaluations int
	StartedAt   time.Time
	Duration    time.Duration
}
