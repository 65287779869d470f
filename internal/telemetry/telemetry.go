// Package telemetry wires the prometheus collectors shared by the search
// client and the HTTP server.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one service instance. Collectors are
// registered on an instance-local registry so tests can build as many
// Metrics as they like without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	PagesFetched   prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forumtopics",
		Name:      "searches_total",
		Help:      "Forum searches by outcome (ok, empty, error).",
	}, []string{"outcome"})

	m.SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "forumtopics",
		Name:      "search_duration_seconds",
		Help:      "Wall time of a full paginated search.",
		Buckets:   prometheus.DefBuckets,
	})

	m.PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forumtopics",
		Name:      "pages_fetched_total",
		Help:      "Search result pages fetched from the upstream forum.",
	})

	m.CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forumtopics",
		Name:      "cache_hits_total",
		Help:      "Search page responses served from the cache.",
	})

	m.CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "forumtopics",
		Name:      "cache_misses_total",
		Help:      "Search page lookups that missed the cache.",
	})

	m.registry.MustRegister(m.Searches, m.SearchDuration, m.PagesFetched, m.CacheHits, m.CacheMisses)
	return m
}

// Handler exposes the instance registry in prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
