package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

const (
	// NominatimBaseURL is the public OpenStreetMap search endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org/search"
	// NominatimUserAgent identifies the service as the Nominatim usage policy requires.
	NominatimUserAgent = "Odyssey-Route-Optimizer/1.0 (https://github.com/UnknownOlympus/odyssey)"
	// defaultLanguage is sent as accept-language when none is configured.
	defaultLanguage = "en"
	// defaultTimeout bounds a single provider HTTP request.
	defaultTimeout = 10 * time.Second
)

// NominatimProvider implements Provider using OpenStreetMap's Nominatim API.
// The public instance allows about one request per second.
type NominatimProvider struct {
	client   HTTPClient   // HTTP client for making requests
	baseURL  string       // Base URL for the Nominatim API
	language string       // Preferred result languages, e.g. "uk,en"
	log      *slog.Logger // Logger for logging operations
}

// HTTPClient is the part of *http.Client the HTTP-based providers need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a Nominatim provider backed by an http.Client with the given timeout.
// A zero timeout or empty language falls back to package defaults.
func NewNominatimProvider(timeout time.Duration, language string, log *slog.Logger) *NominatimProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, language, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
func NewNominatimProviderWithClient(client HTTPClient, language string, log *slog.Logger) *NominatimProvider {
	if language == "" {
		language = defaultLanguage
	}

	return &NominatimProvider{
		client:   client,
		baseURL:  NominatimBaseURL,
		language: language,
		log:      log,
	}
}

// Geocode resolves address, retrying with progressively shorter forms of a comma-separated
// address while Nominatim returns no results: the full address, then without the last
// component, then without the last two, then only the first component.
// Any error other than an empty result stops the fallback chain.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	variations := addressFallbacks(address)
	for level, variant := range variations {
		coords, err := np.search(ctx, variant)
		if err == nil {
			if level > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", address, "fallback", variant, "fallback_level", level)
			}
			return coords, nil
		}
		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}
		np.log.DebugContext(ctx, "No results, trying shorter address", "variation", variant, "fallback_level", level)
	}

	np.log.WarnContext(ctx, "All address fallbacks exhausted", "address", address, "variations_tried", len(variations))

	return nil, ErrNominatimEmptyResponse
}

// addressFallbacks returns the unique, non-empty address variations in the order they are tried.
func addressFallbacks(address string) []string {
	if address == "" {
		return []string{""}
	}

	seen := make(map[string]bool)
	var variations []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}
	add(address)

	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 1 {
		add(strings.Join(parts[:len(parts)-1], ", "))
		if len(parts) > 2 {
			add(strings.Join(parts[:len(parts)-2], ", "))
		}
		add(parts[0])
	}

	return variations
}

// search performs one Nominatim request for address.
func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("accept-language", np.language)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", NominatimUserAgent)
	req.Header.Set("Accept-Language", np.language)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
