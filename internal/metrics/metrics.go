// Package metrics exposes Prometheus metrics for parsing and evaluating
// expressions.
//
// Metrics:
//   - gvalop_parses_total: parses by mode and result
//   - gvalop_evaluations_total: evaluations by mode and result
//   - gvalop_parse_duration_seconds: parse latency by mode
//   - gvalop_evaluate_duration_seconds: evaluation latency by mode
//   - gvalop_cache_hits_total, gvalop_cache_misses_total: parse cache lookups by mode
//   - gvalop_cache_entries: parse cache size by mode
//   - gvalop_config_reloads_total: configuration reloads by result
//   - gvalop_http_requests_total: HTTP requests by path and status code
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "gvalop"

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector records metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	parsesTotal      *prometheus.CounterVec
	evaluationsTotal *prometheus.CounterVec
	parseDuration    *prometheus.HistogramVec
	evalDuration     *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	cacheEntries     *prometheus.GaugeVec
	reloadsTotal     *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil, a new one is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	// Parsing and evaluation are in-memory and fast.
	buckets := []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1}
	c := &Collector{
		registry: registry,
		parsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "parses_total",
			Help:      "Total number of expressions parsed",
		}, []string{"mode", "result"}),
		evaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evaluations_total",
			Help:      "Total number of expression evaluations",
		}, []string{"mode", "result"}),
		parseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing expressions",
			Buckets:   buckets,
		}, []string{"mode"}),
		evalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluate_duration_seconds",
			Help:      "Time spent evaluating expressions",
			Buckets:   buckets,
		}, []string{"mode"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of parse cache hits",
		}, []string{"mode"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of parse cache misses",
		}, []string{"mode"}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "cache_entries",
			Help:      "Current number of parsed expressions in the cache",
		}, []string{"mode"}),
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "config_reloads_total",
			Help:      "Total number of configuration reloads",
		}, []string{"result"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"path", "code"}),
	}
	registry.MustRegister(
		c.parsesTotal,
		c.evaluationsTotal,
		c.parseDuration,
		c.evalDuration,
		c.cacheHits,
		c.cacheMisses,
		c.cacheEntries,
		c.reloadsTotal,
		c.requestsTotal,
	)
	return c
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// RecordParse records a parse in the given mode.
func (c *Collector) RecordParse(mode string, d time.Duration, err error) {
	c.parsesTotal.WithLabelValues(mode, result(err)).Inc()
	c.parseDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordEvaluate records an evaluation in the given mode.
func (c *Collector) RecordEvaluate(mode string, d time.Duration, err error) {
	c.evaluationsTotal.WithLabelValues(mode, result(err)).Inc()
	c.evalDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordCacheLookup records a parse cache lookup.
func (c *Collector) RecordCacheLookup(mode string, hit bool) {
	if hit {
		c.cacheHits.WithLabelValues(mode).Inc()
	} else {
		c.cacheMisses.WithLabelValues(mode).Inc()
	}
}

// SetCacheEntries sets the current size of a parse cache.
func (c *Collector) SetCacheEntries(mode string, n int) {
	c.cacheEntries.WithLabelValues(mode).Set(float64(n))
}

// RecordReload records a configuration reload.
func (c *Collector) RecordReload(err error) {
	c.reloadsTotal.WithLabelValues(result(err)).Inc()
}

// RecordRequest records a served HTTP request.
func (c *Collector) RecordRequest(path string, code int) {
	c.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
