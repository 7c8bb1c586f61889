package telemetry

import (
	"testing"
	"time"

	"squadhealth/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricDisabled(t *testing.T) {
	m := NewMetric(&config.Configuration{})
	assert.Nil(t, m.HttpRequestsTotal)

	// 未啟用時 Observe 系列不可 panic
	m.ObserveCache("hit")
	m.ObserveOrgTree(0.1)
	m.ObserveSubmission("created")
	m.ObserveRequest("/api/v1/teams", 200, time.Millisecond)
	m.ObserveFailure("no-data")
	var nilMetric *Metric
	nilMetric.ObserveCache("miss")
}

func TestMetricObserve(t *testing.T) {
	conf := &config.Configuration{App: config.App{Name: "squadhealth"}}
	registry := prometheus.NewRegistry()
	m := newMetric(conf, promauto.With(registry))

	m.ObserveCache("hit")
	m.ObserveCache("hit")
	m.ObserveCache("miss")
	m.ObserveSubmission("created")
	m.ObserveRequest("/api/v1/teams/:teamID/summary", 404, 20*time.Millisecond)
	m.ObserveSuccess("/api/v1/teams", 200)
	m.ObserveFailure("no-data")

	assert.InDelta(t, 1, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues("/api/v1/teams/:teamID/summary", "404")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResponseSuccessTotal.WithLabelValues("/api/v1/teams", "200")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResponseFailTotal.WithLabelValues("no-data")), 1e-9)
	assert.InDelta(t, 2, testutil.ToFloat64(m.CacheLookupTotal.WithLabelValues("hit")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheLookupTotal.WithLabelValues("miss")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("created")), 1e-9)

	families, err := registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "squadhealth_cache_lookup_total")
	assert.Contains(t, names, "squadhealth_submissions_total")
}
