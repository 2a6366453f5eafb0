// Package api exposes the route optimizer over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/odyssey/internal/metrics"
	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// RouteOptimizer is implemented by *service.RouteService.
type RouteOptimizer interface {
	Optimize(ctx context.Context, inputs []models.StopInput, anchorID *int) (*models.RoutePlan, error)
	GetPlan(ctx context.Context, id string) (*models.RoutePlan, error)
}

// HealthCheck is a named dependency check used by /healthz.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Server serves the HTTP API.
type Server struct {
	log     *slog.Logger
	routes  RouteOptimizer
	metrics *metrics.Metrics
	gather  prometheus.Gatherer
	checks  []HealthCheck
}

// NewServer creates a Server. Metrics are served from gather.
func NewServer(
	log *slog.Logger,
	routes RouteOptimizer,
	metrics *metrics.Metrics,
	gather prometheus.Gatherer,
	checks ...HealthCheck,
) *Server {
	return &Server{log: log, routes: routes, metrics: metrics, gather: gather, checks: checks}
}

// Handler returns the routed handler wrapped in the access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/optimize-route", s.OptimizeRouteHandler)
	mux.HandleFunc("GET /api/routes/{id}", s.RouteByIDHandler)
	mux.HandleFunc("GET /healthz", s.HealthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))

	return s.accessLog(mux)
}
