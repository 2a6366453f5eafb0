// Package geo computes great-circle distances between geographic points.
package geo

import (
	"math"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
// Inputs are not range-checked; out-of-range degrees yield a number without geometric meaning.
// Finite inputs never produce NaN.
func Distance(a, b models.Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*sinLon*sinLon
	// Rounding can push h just outside [0, 1] for antipodal pairs.
	h = math.Min(math.Max(h, 0), 1)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Matrix builds the symmetric n×n distance table for points. The diagonal is zero and
// each pair is computed once, so matrix[i][j] == matrix[j][i] exactly.
func Matrix(points []models.Coordinates) [][]float64 {
	n := len(points)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			d := Distance(points[i], points[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
