package models

import "math"

// Coordinates represents a geographical point defined by its latitude and longitude in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat" yaml:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lng" yaml:"lng"` // Longitude of the geographical point.
}

// Valid reports whether both values are finite and within [-90, 90] and [-180, 180].
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
