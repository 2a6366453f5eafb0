package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/odyssey/internal/api"
	"github.com/UnknownOlympus/odyssey/internal/cache"
	"github.com/UnknownOlympus/odyssey/internal/config"
	"github.com/UnknownOlympus/odyssey/internal/geocoding"
	"github.com/UnknownOlympus/odyssey/internal/metrics"
	"github.com/UnknownOlympus/odyssey/internal/repository"
	"github.com/UnknownOlympus/odyssey/internal/service"
	"github.com/UnknownOlympus/odyssey/internal/tsp"
)

// app holds the wired components and the resources to release on shutdown.
type app struct {
	service *service.RouteService
	checks  []api.HealthCheck
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp connects the configured backends. Without a database host plans are kept in memory;
// without a Redis URL geocoding results are cached in memory.
func newApp(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	appMetrics *metrics.Metrics,
	geocode bool,
) (*app, error) {
	a := &app{}

	var repo repository.Interface
	if cfg.Database.Enabled() {
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		a.closers = append(a.closers, dtb.Close)
		a.checks = append(a.checks, api.HealthCheck{Name: "DB", Ping: dtb.Ping})

		pgRepo := repository.NewRepository(dtb, logger)
		if err = pgRepo.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
		repo = pgRepo
	} else {
		logger.InfoContext(ctx, "Database is not configured, route plans are kept in memory")
		repo = repository.NewMemory()
	}

	var geoCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisCache.Close() })
		a.checks = append(a.checks, api.HealthCheck{Name: "Redis", Ping: redisCache.Ping})
		geoCache = redisCache
	} else {
		geoCache = cache.NewMemoryCache(cfg.CacheTTL)
	}

	providerType := geocoding.ProviderType(cfg.ProviderType)
	var provider geocoding.Provider
	if geocode && providerType != geocoding.ProviderTypeNone {
		var err error
		provider, err = geocoding.NewProvider(providerConfig(cfg, logger))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
		}
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)
	} else {
		logger.InfoContext(ctx, "Geocoding is disabled")
	}

	a.service = service.NewRouteService(
		logger,
		repo,
		provider,
		cfg.ProviderType, // Provider name for metrics
		geoCache,
		tsp.NewSolver(cfg.MaxStops),
		appMetrics,
		cfg.Workers,
		cfg.AddrPrefix,
		cfg.GeocodeTimeout,
	)

	return a, nil
}

// providerConfig maps cfg onto the provider settings. All workers share the
// provider's single limiter, so the configured budget is passed through whole.
func providerConfig(cfg *config.Config, logger *slog.Logger) geocoding.ProviderConfig {
	return geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Timeout:   cfg.GeocodeTimeout,
		Language:  cfg.Language,
		Logger:    logger,
	}
}
