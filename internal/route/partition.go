// Package route turns geocoded stops into solver input and solver output back into an ordered route.
package route

import "github.com/UnknownOlympus/odyssey/internal/models"

// Partition splits stops into those with coordinates and those without.
// Relative input order is preserved inside each group.
func Partition(stops []models.Stop) ([]models.Stop, []models.Stop) {
	resolved := make([]models.Stop, 0, len(stops))
	var unresolved []models.Stop

	for _, stop := range stops {
		if _, ok := stop.Coordinates(); ok {
			resolved = append(resolved, stop)
		} else {
			unresolved = append(unresolved, stop)
		}
	}

	return resolved, unresolved
}

// Points extracts the coordinates of resolved stops in order.
// Stops without coordinates are skipped.
func Points(resolved []models.Stop) []models.Coordinates {
	points := make([]models.Coordinates, 0, len(resolved))
	for _, stop := range resolved {
		if p, ok := stop.Coordinates(); ok {
			points = append(points, p)
		}
	}

	return points
}

// WithAnchor returns a copy of resolved with the stop identified by id moved to the front,
// the others keeping their relative order. The boolean is false when no resolved stop has that id.
func WithAnchor(resolved []models.Stop, id int) ([]models.Stop, bool) {
	idx := -1
	for i, stop := range resolved {
		if stop.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return resolved, false
	}

	out := make([]models.Stop, 0, len(resolved))
	out = append(out, resolved[idx])
	out = append(out, resolved[:idx]...)
	out = append(out, resolved[idx+1:]...)

	return out, true
}
