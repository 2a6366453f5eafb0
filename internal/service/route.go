// Package service resolves stops and computes optimal routes over them.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/cache"
	"github.com/UnknownOlympus/odyssey/internal/geocoding"
	"github.com/UnknownOlympus/odyssey/internal/metrics"
	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/UnknownOlympus/odyssey/internal/repository"
	"github.com/UnknownOlympus/odyssey/internal/route"
	"github.com/UnknownOlympus/odyssey/internal/tsp"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// MinLocations is the smallest number of resolved stops a route can be computed for.
const MinLocations = 2

// DefaultGeocodeTimeout bounds a shared provider lookup when no timeout is configured.
const DefaultGeocodeTimeout = 10 * time.Second

var (
	// ErrInvalidInput is returned for requests that cannot be processed as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientLocations is returned when fewer than MinLocations stops resolved.
	ErrInsufficientLocations = errors.New("need at least 2 valid locations to calculate a route")
	// ErrUnknownAnchor is returned when the requested start stop is absent or unresolved.
	ErrUnknownAnchor = errors.New("start location is not a valid location")
)

// InsufficientLocationsError reports the stops that could not be resolved
// when too few remained to build a route.
type InsufficientLocationsError struct {
	Unresolved []models.Stop
}

func (e *InsufficientLocationsError) Error() string {
	return fmt.Sprintf("%s: %d location(s) could not be geocoded", ErrInsufficientLocations, len(e.Unresolved))
}

func (e *InsufficientLocationsError) Unwrap() error {
	return ErrInsufficientLocations
}

// TooManyLocationsError reports more resolved stops than the exact solver accepts.
type TooManyLocationsError struct {
	Count int
	Limit int
}

func (e *TooManyLocationsError) Error() string {
	return fmt.Sprintf("%s: %d locations, limit %d", tsp.ErrTooManyPoints, e.Count, e.Limit)
}

func (e *TooManyLocationsError) Unwrap() error {
	return tsp.ErrTooManyPoints
}

// RouteService turns caller stops into optimized route plans.
type RouteService struct {
	log           *slog.Logger         // Logger for logging service activities
	repo          repository.Interface // Storage for plans and geocoding failures
	provider      geocoding.Provider   // Geocoding provider; nil disables geocoding
	providerName  string               // Name of the provider for metrics labeling
	cache         cache.Cache          // Optional cache of geocoding results
	solver        *tsp.Solver          // Exact route solver
	metrics       *metrics.Metrics     // Metrics for tracking service performance
	numWorkers    int                  // Number of concurrent geocoding workers
	addressPrefix string               // Address prefix for more accurate geocoding (indicating country, city, etc.)
	lookupTimeout time.Duration        // Upper bound for one shared provider lookup

	group singleflight.Group
	now   func() time.Time
	newID func() string
}

// NewRouteService creates a new instance of RouteService.
// A nil provider disables geocoding, so only stops with coordinates can be routed.
// A nil cache disables caching. A non-positive geocodeTimeout falls back to DefaultGeocodeTimeout.
func NewRouteService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	cache cache.Cache,
	solver *tsp.Solver,
	metrics *metrics.Metrics,
	numWorkers int,
	addressPrefix string,
	geocodeTimeout time.Duration,
) *RouteService {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if geocodeTimeout <= 0 {
		geocodeTimeout = DefaultGeocodeTimeout
	}

	return &RouteService{
		log:           log,
		repo:          repo,
		provider:      provider,
		providerName:  providerName,
		cache:         cache,
		solver:        solver,
		metrics:       metrics,
		numWorkers:    numWorkers,
		addressPrefix: addressPrefix,
		lookupTimeout: geocodeTimeout,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Limit reports the largest number of resolved stops Optimize accepts.
func (rs *RouteService) Limit() int {
	return rs.solver.Limit()
}

// Optimize resolves inputs, computes the shortest closed tour over the resolved stops and
// stores the resulting plan. The tour starts at anchorID when given, otherwise at the first
// resolved stop. Unresolved stops are appended after the tour.
//
// It returns *InsufficientLocationsError when fewer than two stops resolve, an error wrapping
// ErrUnknownAnchor when anchorID is not a resolved stop and *TooManyLocationsError
// when more stops resolve than the solver accepts.
func (rs *RouteService) Optimize(
	ctx context.Context,
	inputs []models.StopInput,
	anchorID *int,
) (*models.RoutePlan, error) {
	if err := validate(inputs); err != nil {
		rs.metrics.RoutePlans.WithLabelValues("invalid").Inc()
		return nil, err
	}

	stops := rs.resolve(ctx, inputs)
	resolved, unresolved := route.Partition(stops)

	if len(resolved) < MinLocations {
		rs.metrics.RoutePlans.WithLabelValues("insufficient").Inc()
		return nil, &InsufficientLocationsError{Unresolved: unresolved}
	}

	if anchorID != nil {
		var ok bool
		resolved, ok = route.WithAnchor(resolved, *anchorID)
		if !ok {
			rs.metrics.RoutePlans.WithLabelValues("invalid").Inc()
			return nil, fmt.Errorf("%w: %d", ErrUnknownAnchor, *anchorID)
		}
	}

	if limit := rs.solver.Limit(); len(resolved) > limit {
		rs.metrics.RoutePlans.WithLabelValues("too_many").Inc()
		return nil, &TooManyLocationsError{Count: len(resolved), Limit: limit}
	}

	rs.metrics.SolvePoints.Observe(float64(len(resolved)))
	startTime := time.Now()
	result, err := rs.solver.Solve(route.Points(resolved))
	rs.metrics.SolveSeconds.Observe(time.Since(startTime).Seconds())
	if err != nil {
		rs.metrics.RoutePlans.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to optimize route: %w", err)
	}

	ordered, total := route.Assemble(resolved, result.Tour, unresolved)
	plan := models.RoutePlan{
		ID:              rs.newID(),
		AnchorID:        resolved[0].ID,
		Stops:           ordered,
		Unresolved:      unresolved,
		TotalDistanceKm: total,
		OptimalCostKm:   result.Cost,
		CreatedAt:       rs.now().UTC().Truncate(time.Microsecond),
	}

	if err = rs.repo.SaveRoutePlan(ctx, plan); err != nil {
		rs.log.ErrorContext(ctx, "Failed to save route plan", "plan", plan.ID, "error", err)
	}

	rs.metrics.RoutePlans.WithLabelValues("success").Inc()
	rs.log.InfoContext(ctx, "Route optimized",
		"plan", plan.ID,
		"stops", len(resolved),
		"unresolved", len(unresolved),
		"distance_km", total,
	)

	return &plan, nil
}

// GetPlan returns a previously stored plan or an error wrapping repository.ErrNotFound.
func (rs *RouteService) GetPlan(ctx context.Context, id string) (*models.RoutePlan, error) {
	plan, err := rs.repo.GetRoutePlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get route plan %s: %w", id, err)
	}

	return plan, nil
}

func validate(inputs []models.StopInput) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no locations provided", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(inputs))
	for _, input := range inputs {
		if _, dup := seen[input.ID]; dup {
			return fmt.Errorf("%w: duplicate location id %d", ErrInvalidInput, input.ID)
		}
		seen[input.ID] = struct{}{}

		if input.Coordinates != nil && !input.Coordinates.Valid() {
			return fmt.Errorf("%w: location %d has invalid coordinates", ErrInvalidInput, input.ID)
		}
	}

	return nil
}
