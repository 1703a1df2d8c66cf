// Package scraper orchestrates a single-game scrape: cache lookup, feed
// fetch, extraction, canonicalization, cache write, and stream publish.
// All collaborators are injected; nil cache, publisher, or metrics simply
// disable that concern.
package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/maxtixador/scrapernhl/internal/cache"
	"github.com/maxtixador/scrapernhl/internal/metrics"
	"github.com/maxtixador/scrapernhl/internal/providers/leaguestat"
	"github.com/maxtixador/scrapernhl/internal/publisher"
	"github.com/maxtixador/scrapernhl/internal/registry"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

// Scraper wires the league registry to the fetch, cache, and publish
// collaborators.
type Scraper struct {
	registry  *registry.Registry
	client    *leaguestat.Client
	cache     *cache.PBPCache
	publisher *publisher.StreamPublisher
	metrics   *metrics.Metrics
	lang      string
}

// New creates a scraper. Cache, publisher, and metrics may be nil.
func New(reg *registry.Registry, client *leaguestat.Client, pbpCache *cache.PBPCache, pub *publisher.StreamPublisher, m *metrics.Metrics, lang string) *Scraper {
	if lang == "" {
		lang = "en"
	}
	return &Scraper{
		registry:  reg,
		client:    client,
		cache:     pbpCache,
		publisher: pub,
		metrics:   m,
		lang:      lang,
	}
}

// Leagues returns the registered league keys.
func (s *Scraper) Leagues() []models.League {
	return s.registry.Leagues()
}

// ScrapeGame returns the canonical play-by-play for one game, consulting
// the cache first. Cache and publish failures are logged and never fail the
// scrape; fetch and extraction failures do.
func (s *Scraper) ScrapeGame(ctx context.Context, league models.League, gameID int64, nhlify bool) ([]models.Event, error) {
	module, err := s.registry.Module(league)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		events, err := s.cache.Get(ctx, league, gameID, nhlify)
		if err != nil {
			log.Printf("[%s] game %d: cache read failed, refetching: %v", league, gameID, err)
		} else if events != nil {
			s.countCache(true)
			return events, nil
		}
		s.countCache(false)
	}

	start := time.Now()
	raw, err := s.client.FetchEvents(ctx, module.Feed(), gameID, s.lang)
	if err != nil {
		s.countGame(league, "fetch_error")
		return nil, fmt.Errorf("fetching %s game %d: %w", league, gameID, err)
	}

	events, err := module.Extract(gameID, raw)
	if err != nil {
		s.countGame(league, "parse_error")
		return nil, err
	}
	events = module.Canonicalize(events, nhlify)

	if s.metrics != nil {
		s.metrics.ScrapeDuration.WithLabelValues(string(league)).Observe(time.Since(start).Seconds())
		s.metrics.EventsCanonicalized.WithLabelValues(string(league)).Add(float64(len(events)))
	}
	s.countGame(league, "ok")

	if s.cache != nil {
		if err := s.cache.Set(ctx, league, gameID, nhlify, events); err != nil {
			log.Printf("[%s] game %d: cache write failed: %v", league, gameID, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishGame(ctx, league, gameID, nhlify, events); err != nil {
			log.Printf("[%s] game %d: publish failed: %v", league, gameID, err)
		}
	}
	return events, nil
}

func (s *Scraper) countGame(league models.League, status string) {
	if s.metrics != nil {
		s.metrics.GamesScraped.WithLabelValues(string(league), status).Inc()
	}
}

func (s *Scraper) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
	}
}
