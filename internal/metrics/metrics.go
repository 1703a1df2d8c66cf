// Package metrics exposes Prometheus instrumentation for the scraper.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the scraper's Prometheus collectors. Construct one per
// process and inject it; there is no package-level default.
type Metrics struct {
	GamesScraped        *prometheus.CounterVec
	ScrapeDuration      *prometheus.HistogramVec
	EventsCanonicalized *prometheus.CounterVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
}

// New registers the scraper collectors on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GamesScraped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapernhl_games_scraped_total",
			Help: "Games scraped, by league and outcome.",
		}, []string{"league", "status"}),
		ScrapeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scrapernhl_scrape_duration_seconds",
			Help:    "End-to-end scrape duration per game.",
			Buckets: prometheus.DefBuckets,
		}, []string{"league"}),
		EventsCanonicalized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapernhl_events_canonicalized_total",
			Help: "Canonical events produced, by league.",
		}, []string{"league"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "scrapernhl_cache_hits_total",
			Help: "Play-by-play cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "scrapernhl_cache_misses_total",
			Help: "Play-by-play cache misses.",
		}),
	}
}
