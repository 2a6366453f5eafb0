package models

import "time"

// RoutePlan is an optimized closed tour over the resolved stops of a request.
//
// Stops holds the tour (anchor first and last) followed by every unresolved stop.
// TotalDistanceKm is summed over consecutive resolved pairs of Stops; OptimalCostKm is
// the cost reported by the solver. Both agree up to floating-point rounding.
type RoutePlan struct {
	ID              string
	AnchorID        int
	Stops           []Stop
	Unresolved      []Stop
	TotalDistanceKm float64
	OptimalCostKm   float64
	CreatedAt       time.Time
}
