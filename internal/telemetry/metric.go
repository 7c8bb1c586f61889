package telemetry

import (
	"strconv"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal    *prometheus.CounterVec
	HttpRequestDuration  *prometheus.HistogramVec
	ResponseSuccessTotal *prometheus.CounterVec
	ResponseFailTotal    *prometheus.CounterVec
	CacheLookupTotal     *prometheus.CounterVec
	OrgTreeBuildSeconds  prometheus.Histogram
	SubmissionsTotal     *prometheus.CounterVec
	config               *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	return newMetric(config, promauto.With(prometheus.DefaultRegisterer))
}

func newMetric(config *config.Configuration, factory promauto.Factory) *Metric {
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricHttpRequestDuration),
				Help:    "Request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricResponseSuccessTotal),
				Help: "Successful responses written by the response middleware",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricResponseFailTotal),
				Help: "Failed responses grouped by error reason",
			},
			labelNames(core.MetricLabelReason),
		),
		CacheLookupTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricCacheLookupTotal),
				Help: "Organization snapshot cache lookups (hit / miss / error)",
			},
			labelNames(core.MetricLabelResult),
		),
		OrgTreeBuildSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricOrgTreeBuildSeconds),
				Help:    "Time spent building an organization tree (seconds)",
				Buckets: buckets,
			},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricSubmissionsTotal),
				Help: "Health check submissions grouped by result",
			},
			labelNames(core.MetricLabelResult),
		),
	}
}

// ObserveRequest 由 TraceEntry 在每個 request 結束時呼叫
func (m *Metric) ObserveRequest(route string, status int, took time.Duration) {
	if m == nil || m.HttpRequestsTotal == nil || m.HttpRequestDuration == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HttpRequestDuration.WithLabelValues(route).Observe(took.Seconds())
}

func (m *Metric) ObserveSuccess(route string, status int) {
	if m == nil || m.ResponseSuccessTotal == nil {
		return
	}
	m.ResponseSuccessTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metric) ObserveFailure(reason string) {
	if m == nil || m.ResponseFailTotal == nil {
		return
	}
	m.ResponseFailTotal.WithLabelValues(reason).Inc()
}

// ObserveCache 記錄快取結果；指標未啟用時略過
func (m *Metric) ObserveCache(result string) {
	if m == nil || m.CacheLookupTotal == nil {
		return
	}
	m.CacheLookupTotal.WithLabelValues(result).Inc()
}

func (m *Metric) ObserveOrgTree(seconds float64) {
	if m == nil || m.OrgTreeBuildSeconds == nil {
		return
	}
	m.OrgTreeBuildSeconds.Observe(seconds)
}

func (m *Metric) ObserveSubmission(result string) {
	if m == nil || m.SubmissionsTotal == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

func metricName(config *config.Configuration, name core.MetricName) string {
	if config.App.Name == "" {
		return string(name)
	}
	return config.App.Name + "_" + string(name)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
