package services

import "load-route-service/internal/domain"

const (
	DefaultCapacity   = 720.0
	DefaultPenalty    = 1e7
	DefaultDriverCost = 500.0
)

// CostModel scores routes. It is the only judge of solution quality.
//
// A segment costs arrival + loads + deadhead between loads + return. Segments
// over Capacity are not rejected; they add Penalty so the search avoids them.
type CostModel struct {
	Capacity   float64
	Penalty    float64
	DriverCost float64
}

// CostBreakdown holds the components Evaluate sums up.
type CostBreakdown struct {
	Drivers      int
	DistanceCost float64 // includes penalties
	Infeasible   int
	Total        float64
}

func DefaultCostModel() CostModel {
	return CostModel{
		Capacity:   DefaultCapacity,
		Penalty:    DefaultPenalty,
		DriverCost: DefaultDriverCost,
	}
}

// Evaluate returns the total cost of r: DriverCost per non-empty segment plus
// the distance of every segment and Penalty per over-capacity segment.
func (m CostModel) Evaluate(r domain.Route) float64 {
	return m.Breakdown(r).Total
}

// Breakdown walks r once and reports the cost components.
func (m CostModel) Breakdown(r domain.Route) CostBreakdown {
	var (
		b       CostBreakdown
		segment float64
	)

	for i := 1; i < len(r); i++ {
		prev, curr := r[i-1], r[i]

		switch {
		case curr.IsDepot():
			segment += prev.ReturnCost
			b.DistanceCost += segment
			if segment > m.Capacity {
				b.DistanceCost += m.Penalty
				b.Infeasible++
			}
			// Two depots in a row are an unused driver.
			if !prev.IsDepot() {
				b.Drivers++
			}
			segment = 0
		case prev.IsDepot():
			segment = curr.ArrivalCost + curr.LoadCost
		default:
			segment += domain.Distance(prev.End, curr.Start) + curr.LoadCost
		}
	}

	b.Total = m.DriverCost*float64(b.Drivers) + b.DistanceCost
	return b
}

// SegmentCost returns the cost of one driver serving loads in order.
// An empty segment costs nothing.
func SegmentCost(loads []domain.Load) float64 {
	if len(loads) == 0 {
		return 0
	}

	cost := loads[0].ArrivalCost + loads[0].LoadCost
	for i := 1; i < len(loads); i++ {
		cost += domain.Distance(loads[i-1].End, loads[i].Start) + loads[i].LoadCost
	}
	return cost + loads[len(loads)-1].ReturnCost
}

// SegmentFeasible reports whether the segment containing position index fits
// within capacity, without rescanning the whole route. A depot position is
// always feasible.
func (m CostModel) SegmentFeasible(r domain.Route, index int) bool {
	if index < 0 || index >= len(r) || r[index].IsDepot() {
		return true
	}

	left := index
	for left > 0 && !r[left-1].IsDepot() {
		left--
	}
	right := index
	for right < len(r)-1 && !r[right+1].IsDepot() {
		right++
	}

	return SegmentCost(r[left:right+1]) <= m.Capacity
}
