package geocoding_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/UnknownOlympus/odyssey/internal/geocoding"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"google empty", geocoding.ErrEmptyResponse, true},
		{"nominatim empty", geocoding.ErrNominatimEmptyResponse, true},
		{"visicom empty", geocoding.ErrVisicomEmptyResponse, true},
		{"visicom empty address", geocoding.ErrVisicomEmptyAddress, true},
		{"wrapped empty", fmt.Errorf("lookup: %w", geocoding.ErrEmptyResponse), true},
		{"invalid coordinates", geocoding.ErrNominatimInvalidCoords, false},
		{"unauthorized", geocoding.ErrVisicomUnauthorized, false},
		{"context canceled", context.Canceled, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geocoding.IsNotFound(tt.err))
		})
	}
}
