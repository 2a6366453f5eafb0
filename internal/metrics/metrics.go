package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StopsGeocoded  *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	APIErrors      prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	ActiveWorkers  prometheus.Gauge
	SolveSeconds   prometheus.Histogram
	SolvePoints    prometheus.Histogram
	RoutePlans     *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StopsGeocoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_stops_processed_total",
			Help: "Total number of stops passed through geocoding.",
		}, []string{"status"}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_cache_lookups_total",
			Help: "Total number of geocoding cache lookups.",
		}, []string{"result"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geocoding_active_workers",
			Help: "Current number of active workers resolving stops.",
		}),
		SolveSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "route_solve_duration_seconds",
			Help:    "Duration of exact route optimization.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		SolvePoints: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "route_solve_points",
			Help:    "Number of resolved stops passed to the route solver.",
			Buckets: prometheus.LinearBuckets(2, 2, 10),
		}),
		RoutePlans: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "route_plans_total",
			Help: "Total number of route optimization requests by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "path", "status"}),
	}
}
