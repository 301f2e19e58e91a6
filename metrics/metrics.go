package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "activity_forecast"

var upstreamBuckets = prometheus.ExponentialBuckets(0.05, 2, 8)

// Metrics groups the service's collectors around one registry
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	marineFallbacks  prometheus.Counter
	cacheLookups     *prometheus.CounterVec
	forecastRequests *prometheus.CounterVec
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream requests by source and outcome.",
		}, []string{"source", "outcome"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_seconds",
			Help:      "Upstream request latency by source.",
			Buckets:   upstreamBuckets,
		}, []string{"source"}),
		marineFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marine_fallbacks_total",
			Help:      "Forecasts served without marine data because the marine fetch failed.",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_cache_lookups_total",
			Help:      "Location cache lookups by result.",
		}, []string{"result"}),
		forecastRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_requests_total",
			Help:      "Activity forecast requests by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveUpstream records one upstream call. A nil receiver is a no-op so
// that components can run without metrics.
func (m *Metrics) ObserveUpstream(source string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamRequests.WithLabelValues(source, outcome).Inc()
	m.upstreamLatency.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// MarineFallback records a forecast served without marine data
func (m *Metrics) MarineFallback() {
	if m == nil {
		return
	}
	m.marineFallbacks.Inc()
}

// CacheLookup records a location cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ForecastRequest records the outcome of one API request
func (m *Metrics) ForecastRequest(outcome string) {
	if m == nil {
		return
	}
	m.forecastRequests.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
