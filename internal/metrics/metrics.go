// Package metrics provides Prometheus metrics for the data cache.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the cache counters, labelled by cache key.
type Metrics struct {
	registry *prometheus.Registry

	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	FetchFailures  *prometheus.CounterVec
	DegradedServes *prometheus.CounterVec
	CacheEntries   prometheus.GaugeFunc
}

// New registers the metrics on a fresh registry under namespace.
// entries, if non-nil, reports the number of fresh cache entries.
func New(namespace string, entries func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Loads served from a fresh cache entry",
		}, []string{"key"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Non-forced loads that found no fresh cache entry",
		}, []string{"key"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Remote fetches that failed",
		}, []string{"key"}),
		DegradedServes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_serves_total",
			Help:      "Failed fetches answered with stale cached data",
		}, []string{"key"}),
	}
	if entries != nil {
		m.CacheEntries = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of fresh cache entries",
		}, func() float64 { return float64(entries()) })
	}
	return m
}

func (m *Metrics) Hit(key string)         { m.CacheHits.WithLabelValues(key).Inc() }
func (m *Metrics) Miss(key string)        { m.CacheMisses.WithLabelValues(key).Inc() }
func (m *Metrics) FetchFailed(key string) { m.FetchFailures.WithLabelValues(key).Inc() }
func (m *Metrics) Degraded(key string)    { m.DegradedServes.WithLabelValues(key).Inc() }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
