package domain

import "math"

// Immutable planar coordinates in distance units.
type Point struct {
	X float64
	Y float64
}

// Origin is the depot location every driver starts and ends at.
var Origin = Point{}

// Distance returns the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) String() string {
	return "(" + formatFloat(p.X) + "," + formatFloat(p.Y) + ")"
}
