package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/odyssey/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.RoutePlans.WithLabelValues("success").Inc()
	m.StopsGeocoded.WithLabelValues("failure").Add(2)
	m.SolvePoints.Observe(5)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RoutePlans.WithLabelValues("success")), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.StopsGeocoded.WithLabelValues("failure")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "route_plans_total")
	assert.Contains(t, names, "route_solve_points")
	assert.Contains(t, names, "geocoding_stops_processed_total")
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	assert.Panics(t, func() { metrics.NewMetrics(reg) })
}
