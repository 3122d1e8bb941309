package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidRoute = errors.New("invalid route")

// Route is one candidate solution: every load exactly once, split into driver
// segments by Depot entries, and bounded by a Depot at both ends.
// Consecutive depots are allowed and stand for an unused driver.
type Route []Load

// Segment is a maximal run of loads between two depots, served by one driver.
type Segment []Load

// NewRoute wraps the given segments with depots. Empty segments are kept as
// consecutive depots.
func NewRoute(segments ...Segment) Route {
	r := Route{Depot}
	for _, seg := range segments {
		r = append(r, seg...)
		r = append(r, Depot)
	}
	if len(segments) == 0 {
		r = append(r, Depot)
	}
	return r
}

// Clone returns a copy with its own backing array.
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// Swap exchanges the entries at positions i and j in place.
func (r Route) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// Segments returns the non-empty driver segments in route order.
func (r Route) Segments() []Segment {
	var out []Segment
	start := -1
	for i, l := range r {
		if l.IsDepot() {
			if start >= 0 && i > start {
				out = append(out, Segment(r[start:i:i]))
			}
			start = i + 1
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 && start < len(r) {
		out = append(out, Segment(r[start:]))
	}
	return out
}

// Loads returns the non-depot entries in route order.
func (r Route) Loads() []Load {
	out := make([]Load, 0, len(r))
	for _, l := range r {
		if !l.IsDepot() {
			out = append(out, l)
		}
	}
	return out
}

// Validate checks the structural invariants of r against the full load set.
func (r Route) Validate(loads []Load) error {
	if len(r) < 2 {
		return fmt.Errorf("validate route: %w: need at least two depots, got %d entries", ErrInvalidRoute, len(r))
	}
	if !r[0].IsDepot() || !r[len(r)-1].IsDepot() {
		return fmt.Errorf("validate route: %w: route must start and end at the depot", ErrInvalidRoute)
	}

	want := make(map[int]Load, len(loads))
	for _, l := range loads {
		want[l.ID] = l
	}

	seen := make(map[int]struct{}, len(loads))
	for i, l := range r {
		if l.IsDepot() {
			continue
		}
		expected, ok := want[l.ID]
		if !ok || !expected.Equal(l) {
			return fmt.Errorf("validate route: %w: unknown load %d at position %d", ErrInvalidRoute, l.ID, i)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("validate route: %w: load %d appears more than once", ErrInvalidRoute, l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	if len(seen) != len(want) {
		return fmt.Errorf("validate route: %w: %d of %d loads present", ErrInvalidRoute, len(seen), len(want))
	}
	return nil
}

// IDs returns the load ids of the segment in visiting order.
func (s Segment) IDs() []int {
	ids := make([]int, len(s))
	for i, l := range s {
		ids[i] = l.ID
	}
	return ids
}
