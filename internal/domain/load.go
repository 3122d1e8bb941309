package domain

import (
	"fmt"
	"strconv"
)

// Represents a single transport job from a pickup point to a drop-off point.
// The three leg costs are computed once by NewLoad and never change.
type Load struct {
	ID    int
	Start Point
	End   Point

	ArrivalCost float64 // origin -> Start
	ReturnCost  float64 // End -> origin
	LoadCost    float64 // Start -> End
}

// Depot is the sentinel entry separating driver segments in a Route.
var Depot = NewLoad(0, Origin, Origin)

// NewLoad builds a Load and caches its leg costs.
func NewLoad(id int, start, end Point) Load {
	return Load{
		ID:          id,
		Start:       start,
		End:         end,
		ArrivalCost: Distance(Origin, start),
		ReturnCost:  Distance(end, Origin),
		LoadCost:    Distance(start, end),
	}
}

// Equal compares loads structurally on id and coordinates.
func (l Load) Equal(other Load) bool {
	return l.ID == other.ID && l.Start == other.Start && l.End == other.End
}

// IsDepot reports whether l is structurally the depot sentinel.
func (l Load) IsDepot() bool {
	return l.Equal(Depot)
}

// RoundTripCost is the cost of a driver serving only this load.
func (l Load) RoundTripCost() float64 {
	return l.ArrivalCost + l.LoadCost + l.ReturnCost
}

func (l Load) String() string {
	if l.IsDepot() {
		return "depot"
	}
	return fmt.Sprintf("load %d %s->%s", l.ID, l.Start, l.End)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
