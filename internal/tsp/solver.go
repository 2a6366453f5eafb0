package tsp

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/odyssey/internal/geo"
	"github.com/UnknownOlympus/odyssey/internal/models"
)

// MaxPoints is the hard upper bound on points accepted by the exact solver.
// At 20 points the tables already take about 240 MB.
const MaxPoints = 20

// ErrTooManyPoints is returned when the input exceeds the solver's limit.
var ErrTooManyPoints = errors.New("tsp: too many points for exact solver")

// ErrInvalidPoint is returned for non-finite or out-of-range coordinates.
var ErrInvalidPoint = errors.New("tsp: invalid point")

// Result holds the outcome of a solve.
type Result struct {
	// Tour is the sequence of point indices, starting and ending at 0.
	// For n ≥ 1 points, len(Tour) == n+1.
	Tour []int

	// Cost is the total length of the closed tour in kilometers.
	Cost float64
}

// Solver computes exact closed tours over geographic points.
// It holds no per-call state and is safe for concurrent use.
type Solver struct {
	maxPoints int
}

// NewSolver returns a Solver accepting at most maxPoints points.
// Values outside (0, MaxPoints] are clamped to MaxPoints.
func NewSolver(maxPoints int) *Solver {
	if maxPoints <= 0 || maxPoints > MaxPoints {
		maxPoints = MaxPoints
	}

	return &Solver{maxPoints: maxPoints}
}

// Limit reports the largest number of points Solve accepts.
func (s *Solver) Limit() int {
	return s.maxPoints
}

// Solve returns the minimum-cost closed tour over points anchored at points[0].
//
// Zero points yield an empty tour and one point yields [0 0], both at cost 0.
// Duplicate coordinates are accepted as zero-length edges.
func (s *Solver) Solve(points []models.Coordinates) (Result, error) {
	n := len(points)
	if n > s.maxPoints {
		return Result{}, fmt.Errorf("%w: %d points, limit %d", ErrTooManyPoints, n, s.maxPoints)
	}

	for i, p := range points {
		if !p.Valid() {
			return Result{}, fmt.Errorf("%w: index %d (%v, %v)", ErrInvalidPoint, i, p.Latitude, p.Longitude)
		}
	}

	switch n {
	case 0:
		return Result{Tour: []int{}}, nil
	case 1:
		return Result{Tour: []int{0, 0}}, nil
	}

	return HeldKarp(geo.Matrix(points)), nil
}
