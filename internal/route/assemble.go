package route

import (
	"github.com/UnknownOlympus/odyssey/internal/geo"
	"github.com/UnknownOlympus/odyssey/internal/models"
)

// Assemble maps tour indices onto resolved stops, appends unresolved stops in their
// original order and returns the ordered route with its total distance in kilometers.
//
// The total sums geo.Distance over consecutive pairs where both stops have coordinates.
// A pair touching an unresolved stop contributes zero, so unresolved stops never add distance.
func Assemble(resolved []models.Stop, tour []int, unresolved []models.Stop) ([]models.Stop, float64) {
	ordered := make([]models.Stop, 0, len(tour)+len(unresolved))
	for _, idx := range tour {
		ordered = append(ordered, resolved[idx])
	}
	ordered = append(ordered, unresolved...)

	return ordered, TotalDistance(ordered)
}

// TotalDistance sums distances between consecutive stops that both carry coordinates.
func TotalDistance(stops []models.Stop) float64 {
	total := 0.0
	for i := 0; i+1 < len(stops); i++ {
		from, okFrom := stops[i].Coordinates()
		to, okTo := stops[i+1].Coordinates()
		if okFrom && okTo {
			total += geo.Distance(from, to)
		}
	}

	return total
}
