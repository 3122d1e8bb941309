package services

import (
	"context"
	"load-route-service/internal/domain"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnealerRejectsBadInput(t *testing.T) {
	bad := DefaultSchedule()
	bad.Alpha = 1.5

	_, err := NewAnnealer(DefaultCostModel(), bad, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = NewAnnealer(DefaultCostModel(), DefaultSchedule(), nil)
	assert.Error(t, err)
}

func TestAnnealerFindsSingleDriverRoute(t *testing.T) {
	a, b, c := squareLoads()
	initial := domain.NewRoute(domain.Segment{a}, domain.Segment{b}, domain.Segment{c})

	an, err := NewAnnealer(DefaultCostModel(), DefaultSchedule(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	res, err := an.Run(context.Background(), initial)
	require.NoError(t, err)

	assert.InDelta(t, 540.0, res.BestCost, 1e-9)
	assert.Equal(t, DefaultIterations, res.Iterations)
	assert.Equal(t, DefaultIterations*DefaultInnerMoves, res.Evaluations)
	require.NoError(t, res.Best.Validate([]domain.Load{a, b, c}))
	assert.Equal(t, [][]int{{1, 2, 3}}, domain.Solution{Route: res.Best}.Segments())
}

func TestAnnealerIsDeterministic(t *testing.T) {
	loads := randomLoads(rand.New(rand.NewSource(21)), 40)
	m := DefaultCostModel()

	run := func() Result {
		rng := rand.New(rand.NewSource(1234))
		an, err := NewAnnealer(m, quickSchedule(), rng)
		require.NoError(t, err)

		res, err := an.Run(context.Background(), m.ShuffledInitialRoute(loads, rng))
		require.NoError(t, err)
		return res
	}

	r1, r2 := run(), run()
	assert.Equal(t, r1.Best, r2.Best)
	assert.Equal(t, r1.BestCost, r2.BestCost)
	assert.Equal(t, r1.Stalls, r2.Stalls)
}

func TestAnnealerBestNeverIncreases(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	loads := randomLoads(rng, 50)
	m := DefaultCostModel()
	initial := m.ShuffledInitialRoute(loads, rng)
	initialCost := m.Evaluate(initial)

	an, err := NewAnnealer(m, quickSchedule(), rng)
	require.NoError(t, err)

	var seen []Progress
	an.Progress = func(p Progress) { seen = append(seen, p) }

	res, err := an.Run(context.Background(), initial)
	require.NoError(t, err)

	require.Len(t, seen, quickSchedule().Iterations)
	prev := initialCost
	for i, p := range seen {
		assert.Equal(t, i+1, p.Iteration)
		assert.LessOrEqual(t, p.BestCost, prev)
		assert.LessOrEqual(t, p.BestCost, p.CurrentCost)
		prev = p.BestCost
	}

	assert.LessOrEqual(t, res.BestCost, initialCost)
	assert.Equal(t, initialCost, res.InitialCost)
	assert.InDelta(t, m.Evaluate(res.Best), res.BestCost, 1e-6)
	require.NoError(t, res.Best.Validate(loads))
	assert.ElementsMatch(t, loads, res.Best.Loads())
}

func TestAnnealerDoesNotMutateInitial(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	loads := randomLoads(rng, 15)
	m := DefaultCostModel()
	initial := m.ShuffledInitialRoute(loads, rng)
	snapshot := initial.Clone()

	an, err := NewAnnealer(m, quickSchedule(), rng)
	require.NoError(t, err)
	_, err = an.Run(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, snapshot, initial)
}

func TestAnnealerZeroIterations(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	loads := randomLoads(rng, 10)
	m := DefaultCostModel()
	initial := m.InitialRoute(loads)

	s := DefaultSchedule()
	s.Iterations = 0
	an, err := NewAnnealer(m, s, rng)
	require.NoError(t, err)

	res, err := an.Run(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, initial, res.Best)
	assert.Equal(t, m.Evaluate(initial), res.BestCost)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, DefaultInitialTemp, res.FinalTemp)
}

func TestAnnealerEmptyRoute(t *testing.T) {
	an, err := NewAnnealer(DefaultCostModel(), DefaultSchedule(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := an.Run(context.Background(), domain.NewRoute())
	require.NoError(t, err)

	assert.Equal(t, domain.Route{domain.Depot, domain.Depot}, res.Best)
	assert.Zero(t, res.BestCost)
	assert.Zero(t, res.Iterations)
}

func TestAnnealerStopsOnCancel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	loads := randomLoads(rng, 10)
	m := DefaultCostModel()
	initial := m.InitialRoute(loads)

	an, err := NewAnnealer(m, DefaultSchedule(), rng)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	an.Progress = func(p Progress) {
		if p.Iteration == 5 {
			cancel()
		}
	}

	res, err := an.Run(ctx, initial)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 5, res.Iterations)
	assert.LessOrEqual(t, res.BestCost, m.Evaluate(initial))
	require.NoError(t, res.Best.Validate(loads))
}

func TestAnnealerCoolsGeometrically(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	m := DefaultCostModel()
	initial := m.InitialRoute(randomLoads(rng, 5))

	s := DefaultSchedule()
	s.Iterations = 3
	an, err := NewAnnealer(m, s, rng)
	require.NoError(t, err)

	res, err := an.Run(context.Background(), initial)
	require.NoError(t, err)
	assert.InDelta(t, 1800*0.99*0.99*0.99, res.FinalTemp, 1e-9)
}

// sameSpotLoads are picked up and dropped at fixed points, so a single
// segment of them costs the same in any order.
func sameSpotLoads(n int) []domain.Load {
	loads := make([]domain.Load, 0, n)
	for i := 1; i <= n; i++ {
		loads = append(loads, domain.NewLoad(i, domain.Point{X: 5, Y: 0}, domain.Point{X: 10, Y: 0}))
	}
	return loads
}

func TestAnnealerAcceptsEqualCostCandidate(t *testing.T) {
	a, b, c := squareLoads()
	m := DefaultCostModel()

	// Both routes serve every load alone; a and c cost the same on their own.
	current := domain.NewRoute(domain.Segment{a}, domain.Segment{b}, domain.Segment{c})
	reordered := domain.NewRoute(domain.Segment{c}, domain.Segment{b}, domain.Segment{a})
	require.Equal(t, m.Evaluate(current), m.Evaluate(reordered))

	an, err := NewAnnealer(m, DefaultSchedule(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	tr := NewTracker(current, m.Evaluate(current))

	// A vanishing temperature still admits a candidate of equal cost.
	adopted, improved := an.accept(tr, reordered.Clone(), m.Evaluate(reordered), 1e-12)
	assert.True(t, adopted)
	assert.False(t, improved)

	cur, _ := tr.Current()
	best, _ := tr.Best()
	assert.Equal(t, reordered, cur)
	assert.Equal(t, current, best)
}

func TestAnnealerAcceptWorseDependsOnTemperature(t *testing.T) {
	a, b, c := squareLoads()
	m := DefaultCostModel()

	current := domain.NewRoute(domain.Segment{a, b, c})
	worse := domain.NewRoute(domain.Segment{a}, domain.Segment{b, c})
	worseCost := m.Evaluate(worse)

	an, err := NewAnnealer(m, DefaultSchedule(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	cold := NewTracker(current, m.Evaluate(current))
	adopted, _ := an.accept(cold, worse.Clone(), worseCost, 1e-9)
	assert.False(t, adopted)
	cur, _ := cold.Current()
	assert.Equal(t, current, cur)

	hot := NewTracker(current, m.Evaluate(current))
	adopted, improved := an.accept(hot, worse.Clone(), worseCost, 1e15)
	assert.True(t, adopted)
	assert.False(t, improved)
	cur, curCost := hot.Current()
	assert.Equal(t, worse, cur)
	assert.Equal(t, worseCost, curCost)
	assert.InDelta(t, 540.0, hot.BestCost(), 1e-9)
}

func TestAnnealerBatchUndoesEqualCostSwaps(t *testing.T) {
	loads := sameSpotLoads(6)
	m := DefaultCostModel()
	current := domain.NewRoute(domain.Segment(loads))

	s := DefaultSchedule()
	s.InnerMoves = 200
	an, err := NewAnnealer(m, s, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	tr := NewTracker(current, m.Evaluate(current))
	got, cost := an.batch(tr)

	assert.Equal(t, current, got)
	assert.Equal(t, m.Evaluate(current), cost)
}

func TestAnnealerCountsStalls(t *testing.T) {
	loads := sameSpotLoads(4)
	m := DefaultCostModel()
	initial := domain.NewRoute(domain.Segment(loads))

	s := DefaultSchedule()
	s.Iterations = 25
	an, err := NewAnnealer(m, s, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	res, err := an.Run(context.Background(), initial)
	require.NoError(t, err)

	// Every order costs the same, so no batch can improve.
	assert.Equal(t, 25, res.Stalls)
	assert.Zero(t, res.Improvements)
	assert.Equal(t, initial, res.Best)
}
