package services

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"load-route-service/internal/domain"
	"math"
)

// PlanKey digests everything that determines the outcome of PlanRoutes.
// Equal keys mean equal solutions, because each restart is a pure function of
// its seed.
func PlanKey(loads []domain.Load, req PlanRoutesRequest) string {
	restarts := req.Restarts
	if restarts < 1 {
		restarts = 1
	}

	h := sha256.New()
	writeFloats(h,
		req.Cost.Capacity, req.Cost.Penalty, req.Cost.DriverCost,
		req.Schedule.InitialTemp, req.Schedule.Alpha,
	)
	writeInts(h, int64(req.Schedule.Iterations), int64(req.Schedule.InnerMoves), req.Seed, int64(restarts))

	writeInts(h, int64(len(loads)))
	for _, l := range loads {
		writeInts(h, int64(l.ID))
		writeFloats(h, l.Start.X, l.Start.Y, l.End.X, l.End.Y)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeFloats(h hash.Hash, fs ...float64) {
	var buf [8]byte
	for _, f := range fs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
}

func writeInts(h hash.Hash, ns ...int64) {
	var buf [8]byte
	for _, n := range ns {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
}

// SolutionFromSegments rebuilds the Solution that segments describe over
// loads. Every load must appear exactly once.
func (m CostModel) SolutionFromSegments(loads []domain.Load, segments [][]int) (domain.Solution, error) {
	byID := make(map[int]domain.Load, len(loads))
	for _, l := range loads {
		byID[l.ID] = l
	}

	segs := make([]domain.Segment, 0, len(segments))
	for _, ids := range segments {
		seg := make(domain.Segment, 0, len(ids))
		for _, id := range ids {
			l, ok := byID[id]
			if !ok {
				return domain.Solution{}, fmt.Errorf("rebuild solution: load_id=%d: %w", id, domain.ErrInvalidRoute)
			}
			seg = append(seg, l)
		}
		segs = append(segs, seg)
	}

	route := domain.NewRoute(segs...)
	if err := route.Validate(loads); err != nil {
		return domain.Solution{}, fmt.Errorf("rebuild solution: %w", err)
	}

	b := m.Breakdown(route)
	return domain.Solution{
		Route:        route,
		Cost:         b.Total,
		DistanceCost: b.DistanceCost,
		Drivers:      b.Drivers,
		Infeasible:   b.Infeasible,
	}, nil
}
