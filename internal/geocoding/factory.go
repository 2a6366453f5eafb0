package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeVisicom represents Visicom Maps geocoding provider.
	ProviderTypeVisicom ProviderType = "visicom"
	// ProviderTypeNone disables geocoding; only stops with caller-supplied coordinates are routed.
	ProviderTypeNone ProviderType = "none"
)

// ErrAPIKeyRequired is returned when a provider that needs credentials is configured without them.
var ErrAPIKeyRequired = errors.New("API key is required")

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key (Google, Visicom)
	RateLimit int           // Requests per second (Google, Visicom)
	Timeout   time.Duration // Per-request timeout (Nominatim, Visicom)
	Language  string        // Preferred result language (Google, Nominatim)
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates the geocoding provider selected by config.Type.
// ProviderTypeNone is not constructible here; callers handle it by not geocoding at all.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Timeout, config.Language, config.Logger), nil
	case ProviderTypeVisicom:
		return newVisicomProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w for Google provider", ErrAPIKeyRequired)
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Language, config.Logger), nil
}

func newVisicomProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w for Visicom provider", ErrAPIKeyRequired)
	}

	if config.RateLimit <= 0 {
		config.RateLimit = defaultVisicomRate
		config.Logger.Warn("Rate limit for Visicom API not set, using default", "value", config.RateLimit)
	}

	return NewVisicomProvider(config.APIKey, config.RateLimit, config.Timeout, config.Logger), nil
}
