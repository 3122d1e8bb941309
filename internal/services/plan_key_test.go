package services

import (
	"context"
	"load-route-service/internal/adapters/instance"
	"load-route-service/internal/domain"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanKey(t *testing.T) {
	loads := randomLoads(rand.New(rand.NewSource(1)), 10)
	req := planRequest(5, 2)
	base := PlanKey(loads, req)

	assert.Len(t, base, 64)
	assert.Equal(t, base, PlanKey(loads, req))

	other := req
	other.Seed = 6
	assert.NotEqual(t, base, PlanKey(loads, other))

	other = req
	other.Schedule.Iterations++
	assert.NotEqual(t, base, PlanKey(loads, other))

	other = req
	other.Cost.Capacity = 700
	assert.NotEqual(t, base, PlanKey(loads, other))

	moved := append([]domain.Load(nil), loads...)
	moved[3] = domain.NewLoad(moved[3].ID, domain.Point{X: 1, Y: 1}, moved[3].End)
	assert.NotEqual(t, base, PlanKey(moved, req))

	// Restarts below one plan exactly like one restart.
	assert.Equal(t, PlanKey(loads, planRequest(5, 1)), PlanKey(loads, planRequest(5, 0)))
}

func TestSolutionFromSegments(t *testing.T) {
	a, b, c := squareLoads()
	m := DefaultCostModel()
	loads := []domain.Load{a, b, c}

	sol, err := m.SolutionFromSegments(loads, [][]int{{1}, {2, 3}})
	require.NoError(t, err)
	assert.InDelta(t, 1060.0, sol.Cost, 1e-9)
	assert.Equal(t, 2, sol.Drivers)
	assert.Equal(t, [][]int{{1}, {2, 3}}, sol.Segments())

	_, err = m.SolutionFromSegments(loads, [][]int{{1, 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)

	_, err = m.SolutionFromSegments(loads, [][]int{{1, 2, 3, 4}})
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)

	empty, err := m.SolutionFromSegments(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Cost)
}

func TestSolutionFromSegmentsMatchesPlan(t *testing.T) {
	loads := randomLoads(rand.New(rand.NewSource(30)), 25)
	res, err := PlanRoutes(context.Background(), planRequest(8, 1), instance.NewStaticLoadRepository(loads))
	require.NoError(t, err)

	sol, err := DefaultCostModel().SolutionFromSegments(loads, res.Solution.Segments())
	require.NoError(t, err)
	assert.InDelta(t, res.Solution.Cost, sol.Cost, 1e-6)
	assert.Equal(t, res.Solution.Drivers, sol.Drivers)
}
