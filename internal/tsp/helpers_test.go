package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/UnknownOlympus/odyssey/internal/geo"
	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/stretchr/testify/require"
)

// relTol is the relative tolerance for comparing independently summed costs.
const relTol = 1e-6

// randomPoints returns n deterministic points scattered over central Europe.
func randomPoints(seed int64, n int) []models.Coordinates {
	rng := rand.New(rand.NewSource(seed))
	points := make([]models.Coordinates, n)
	for i := range points {
		points[i] = models.Coordinates{
			Latitude:  45 + rng.Float64()*10,
			Longitude: 5 + rng.Float64()*25,
		}
	}

	return points
}

// tourLength sums haversine distances over consecutive tour entries.
func tourLength(points []models.Coordinates, tour []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(tour); i++ {
		total += geo.Distance(points[tour[i]], points[tour[i+1]])
	}

	return total
}

// bruteForce returns the minimum closed-tour cost over every permutation of
// 1..n-1 with 0 fixed as the anchor.
func bruteForce(dist [][]float64) float64 {
	n := len(dist)
	rest := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		rest = append(rest, i)
	}

	best := math.Inf(1)
	permute(rest, 0, func(order []int) {
		cost := dist[0][order[0]]
		for i := 0; i+1 < len(order); i++ {
			cost += dist[order[i]][order[i+1]]
		}
		cost += dist[order[len(order)-1]][0]
		if cost < best {
			best = cost
		}
	})

	return best
}

func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

// requireClosedTour asserts that tour is a permutation of 0..n-1 bracketed by 0.
func requireClosedTour(t *testing.T, tour []int, n int) {
	t.Helper()

	require.Len(t, tour, n+1)
	require.Equal(t, 0, tour[0])
	require.Equal(t, 0, tour[n])

	seen := make([]bool, n)
	for _, idx := range tour[:n] {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		require.False(t, seen[idx], "index %d visited twice", idx)
		seen[idx] = true
	}
}
