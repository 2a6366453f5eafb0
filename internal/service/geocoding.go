package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/cache"
	"github.com/UnknownOlympus/odyssey/internal/geocoding"
	"github.com/UnknownOlympus/odyssey/internal/models"
)

const (
	notFoundMessage = `Could not find coordinates for "%s". Please check the spelling or try a more specific address.`
	failedMessage   = `Failed to geocode "%s". Please check your internet connection and try again.`
	disabledMessage = `Geocoding is disabled; provide coordinates for "%s".`
)

var errProviderCoordinates = errors.New("provider returned invalid coordinates")

type resolveJob struct {
	idx   int
	input models.StopInput
}

// resolve geocodes every input on a bounded worker pool and returns the stops in input order.
// A failing stop becomes Unresolved; it never aborts the batch.
func (rs *RouteService) resolve(ctx context.Context, inputs []models.StopInput) []models.Stop {
	stops := make([]models.Stop, len(inputs))
	numWorkers := min(rs.numWorkers, len(inputs))

	rs.log.DebugContext(ctx, "Resolving stops", "stops", len(inputs), "num_workers", numWorkers)

	jobs := make(chan resolveJob, len(inputs))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go rs.worker(ctx, i, &wgr, jobs, stops)
	}

	for idx, input := range inputs {
		jobs <- resolveJob{idx: idx, input: input}
	}
	close(jobs)

	wgr.Wait()

	return stops
}

// worker resolves jobs until the channel is closed. Each job owns its slot in stops.
func (rs *RouteService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan resolveJob,
	stops []models.Stop,
) {
	defer wg.Done()
	for job := range jobs {
		rs.metrics.ActiveWorkers.Inc()
		rs.log.DebugContext(ctx, "Resolving stop", "worker", idx, "stop", job.input.ID)

		stops[job.idx] = models.Stop{
			ID:         job.input.ID,
			Address:    job.input.Address,
			Resolution: rs.resolveStop(ctx, idx, job.input),
		}

		rs.metrics.ActiveWorkers.Dec()
	}
}

func (rs *RouteService) resolveStop(ctx context.Context, idx int, input models.StopInput) models.Resolution {
	if input.Coordinates != nil {
		rs.metrics.StopsGeocoded.WithLabelValues("provided").Inc()
		return models.Resolved{Point: *input.Coordinates}
	}

	if rs.provider == nil {
		rs.metrics.StopsGeocoded.WithLabelValues("disabled").Inc()
		return models.Unresolved{Reason: fmt.Sprintf(disabledMessage, input.Address)}
	}

	if strings.TrimSpace(input.Address) == "" {
		rs.metrics.StopsGeocoded.WithLabelValues("failure").Inc()
		return models.Unresolved{Reason: fmt.Sprintf(notFoundMessage, input.Address)}
	}

	coords, err := rs.geocode(ctx, rs.addressPrefix+input.Address)
	if err != nil {
		rs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "stop", input.ID,
			"address", input.Address, "error", err)
		rs.metrics.StopsGeocoded.WithLabelValues("failure").Inc()

		if errRecord := rs.repo.RecordGeocodingFailure(ctx, input.Address, err.Error()); errRecord != nil {
			rs.log.ErrorContext(ctx, "Could not record geocoding failure",
				"worker", idx,
				"stop", input.ID,
				"error", errRecord,
			)
		}

		if geocoding.IsNotFound(err) {
			return models.Unresolved{Reason: fmt.Sprintf(notFoundMessage, input.Address)}
		}
		return models.Unresolved{Reason: fmt.Sprintf(failedMessage, input.Address)}
	}

	rs.metrics.StopsGeocoded.WithLabelValues("success").Inc()

	return models.Resolved{Point: *coords}
}

// geocode looks the address up in the cache and falls back to the provider.
// Concurrent lookups of the same address share one provider call.
func (rs *RouteService) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if rs.cache != nil {
		coords, err := rs.cache.Get(ctx, address)
		switch {
		case err == nil:
			rs.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return coords, nil
		case errors.Is(err, cache.ErrMiss):
			rs.metrics.CacheLookups.WithLabelValues("miss").Inc()
		default:
			rs.metrics.CacheLookups.WithLabelValues("error").Inc()
			rs.log.WarnContext(ctx, "Geocoding cache unavailable", "error", err)
		}
	}

	// Every waiter on address shares this lookup; it is detached from the starting caller's cancellation.
	res, err, shared := rs.group.Do(address, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rs.lookupTimeout)
		defer cancel()

		startTime := time.Now()
		coords, err := rs.provider.Geocode(callCtx, address)
		rs.metrics.RequestSeconds.WithLabelValues(rs.providerName).Observe(time.Since(startTime).Seconds())
		if err != nil {
			if !geocoding.IsNotFound(err) {
				rs.metrics.APIErrors.Inc()
			}
			return nil, err
		}
		if coords == nil || !coords.Valid() {
			rs.metrics.APIErrors.Inc()
			return nil, errProviderCoordinates
		}

		if rs.cache != nil {
			if errSet := rs.cache.Set(callCtx, address, *coords); errSet != nil {
				rs.log.WarnContext(ctx, "Failed to cache coordinates", "address", address, "error", errSet)
			}
		}

		return coords, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		rs.log.DebugContext(ctx, "Shared geocoding result", "address", address)
	}

	coords, _ := res.(*models.Coordinates)

	return coords, nil
}
