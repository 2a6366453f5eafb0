package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

// Provider resolves an address string into geographic coordinates.
// Implementations must be safe for concurrent use by the resolver's workers.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// IsNotFound reports whether err means the provider answered but found no match for the address,
// as opposed to a transport, quota or decoding failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmptyResponse) ||
		errors.Is(err, ErrNominatimEmptyResponse) ||
		errors.Is(err, ErrVisicomEmptyResponse) ||
		errors.Is(err, ErrVisicomEmptyAddress)
}
