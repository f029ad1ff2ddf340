package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
// Each collector owns its registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query bus metrics
	QueryEvents   *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Graph engine metrics
	GraphBuilds        *prometheus.CounterVec
	GraphBuildDuration *prometheus.HistogramVec
	SimilaritySearches prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// NewCollector creates a metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QueryEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_events_total",
				Help:      "Query bus dispatches by outcome",
			},
			[]string{"event", "query"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		GraphBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_builds_total",
				Help:      "Campus graph builds",
			},
			[]string{"campus"},
		),
		GraphBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_build_duration_seconds",
				Help:      "Campus graph build duration in seconds",
				Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"campus"},
		),
		SimilaritySearches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "similarity_searches_total",
				Help:      "Cross-campus similarity searches",
			},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.QueryEvents,
		c.QueryDuration,
		c.GraphBuilds,
		c.GraphBuildDuration,
		c.SimilaritySearches,
		c.CacheHits,
		c.CacheMisses,
	)

	return c
}

// Registry returns the Prometheus registry for this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Increment counts a query bus event such as query_count or query_errors
func (c *Collector) Increment(metric, label string) {
	c.QueryEvents.WithLabelValues(metric, label).Inc()
}

type promTimer struct{ t *prometheus.Timer }

func (p promTimer) Stop() { p.t.ObserveDuration() }

// StartTimer times a query handler until Stop is called
func (c *Collector) StartTimer(_ string, label string) interface{ Stop() } {
	return promTimer{t: prometheus.NewTimer(c.QueryDuration.WithLabelValues(label))}
}

// ObserveGraphBuild records one campus graph build
func (c *Collector) ObserveGraphBuild(campus string, took time.Duration) {
	c.GraphBuilds.WithLabelValues(campus).Inc()
	c.GraphBuildDuration.WithLabelValues(campus).Observe(took.Seconds())
}

// ObserveCacheLookup records a hit or miss on the named cache
func (c *Collector) ObserveCacheLookup(cache string, hit bool) {
	if hit {
		c.CacheHits.WithLabelValues(cache).Inc()
		return
	}
	c.CacheMisses.WithLabelValues(cache).Inc()
}

// ObserveSimilaritySearch counts one similarity search
func (c *Collector) ObserveSimilaritySearch() {
	c.SimilaritySearches.Inc()
}

// HTTPMiddleware records request counts and latencies by chi route pattern
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
