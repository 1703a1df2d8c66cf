// Package batch runs multi-game scrapes over a bounded worker pool with a
// shared rate limit, collecting per-game failures instead of aborting the
// whole job.
package batch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/maxtixador/scrapernhl/internal/pipeline"
	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

// GameScraper is the single-game scrape dependency.
type GameScraper interface {
	ScrapeGame(ctx context.Context, league models.League, gameID int64, nhlify bool) ([]models.Event, error)
}

// Failure records one game that could not be scraped.
type Failure struct {
	GameID int64
	Err    error
}

// Result is the outcome of a batch run. Events holds the combined canonical
// stream across every successful game, in canonical order.
type Result struct {
	JobID    string
	Events   []models.Event
	Games    []int64
	Failed   []Failure
	Duration time.Duration
}

// SuccessRate returns the fraction of requested games that succeeded.
func (r *Result) SuccessRate() float64 {
	total := len(r.Games) + len(r.Failed)
	if total == 0 {
		return 0
	}
	return float64(len(r.Games)) / float64(total)
}

// Executor fans a list of game IDs out over a worker pool. Every fetch
// passes through the shared limiter, so the upstream API sees one bounded
// request rate regardless of worker count.
type Executor struct {
	scraper GameScraper
	workers int
	limiter *rate.Limiter
	retries int
	backoff time.Duration
}

// NewExecutor creates a batch executor. Workers and rate are clamped to
// sane minimums.
func NewExecutor(scraper GameScraper, workers int, perSecond float64, burst int, retries int, backoff time.Duration) *Executor {
	if workers < 1 {
		workers = 1
	}
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Executor{
		scraper: scraper,
		workers: workers,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		retries: retries,
		backoff: backoff,
	}
}

// Run scrapes every game ID and combines the results into one canonically
// ordered stream. Parsing failures are terminal per game; transient
// failures retry with linear backoff up to the configured count.
func (e *Executor) Run(ctx context.Context, league models.League, gameIDs []int64, nhlify bool) (*Result, error) {
	start := time.Now()
	result := &Result{JobID: uuid.NewString()}

	jobs := make(chan int64)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameID := range jobs {
				events, err := e.scrapeWithRetry(ctx, league, gameID, nhlify)
				mu.Lock()
				if err != nil {
					result.Failed = append(result.Failed, Failure{GameID: gameID, Err: err})
				} else {
					result.Games = append(result.Games, gameID)
					result.Events = append(result.Events, events...)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, gameID := range gameIDs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- gameID:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	pipeline.SortCanonical(result.Events)
	result.Duration = time.Since(start)
	log.Printf("[batch %s] %s: %d games ok, %d failed, %d events in %s",
		result.JobID, league, len(result.Games), len(result.Failed), len(result.Events), result.Duration)
	return result, nil
}

func (e *Executor) scrapeWithRetry(ctx context.Context, league models.League, gameID int64, nhlify bool) ([]models.Event, error) {
	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * e.backoff):
			}
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		events, err := e.scraper.ScrapeGame(ctx, league, gameID, nhlify)
		if err == nil {
			return events, nil
		}
		lastErr = err

		// A malformed payload will not improve on retry.
		var parseErr *scrapererr.ParsingError
		if errors.As(err, &parseErr) {
			return nil, err
		}
	}
	return nil, lastErr
}
