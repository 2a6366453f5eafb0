// Package cache stores geocoding results so repeated addresses skip the provider.
package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

// ErrMiss is returned by Get when the address is not cached.
var ErrMiss = errors.New("cache miss")

// Cache maps addresses to coordinates. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, address string) (*models.Coordinates, error)
	Set(ctx context.Context, address string, coords models.Coordinates) error
}

// normalize folds case and surrounding whitespace so trivially different spellings share an entry.
func normalize(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
