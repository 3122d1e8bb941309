package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	points := []Point{
		{0, 0},
		{3, 4},
		{-12.5, 7.25},
		{1e6, -1e6},
		{0.1, 0.2},
	}

	for _, p := range points {
		require.Zero(t, Distance(p, p), "distance of %v to itself", p)
		for _, q := range points {
			require.Equal(t, Distance(p, q), Distance(q, p), "distance %v <-> %v is not symmetric", p, q)
		}
	}

	require.Equal(t, 5.0, Distance(Point{0, 0}, Point{3, 4}))
	require.Equal(t, 10.0, Distance(Point{10, 10}, Point{0, 10}))
}
