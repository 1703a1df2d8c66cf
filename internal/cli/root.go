// Package cli implements the scrapernhl command tree.
package cli

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/maxtixador/scrapernhl/internal/cache"
	"github.com/maxtixador/scrapernhl/internal/config"
	"github.com/maxtixador/scrapernhl/internal/metrics"
	"github.com/maxtixador/scrapernhl/internal/providers/leaguestat"
	"github.com/maxtixador/scrapernhl/internal/publisher"
	"github.com/maxtixador/scrapernhl/internal/registry"
	"github.com/maxtixador/scrapernhl/internal/scraper"
)

type rootOptions struct {
	configPath string
	noCache    bool
	lang       string
}

// NewRootCmd builds the scrapernhl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scrapernhl",
		Short: "Canonical play-by-play scraper for HockeyTech leagues",
		Long: "scrapernhl fetches play-by-play feeds from the QMJHL, OHL, WHL, AHL, " +
			"and PWHL and canonicalizes them into one temporally ordered event stream.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "bypass the Redis cache")
	cmd.PersistentFlags().StringVar(&opts.lang, "lang", "", "feed language code (en or fr)")

	cmd.AddCommand(newGameCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))
	cmd.AddCommand(newLeaguesCmd())
	cmd.AddCommand(newCacheCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if o.noCache {
		cfg.CacheEnabled = false
	}
	if o.lang != "" {
		cfg.Lang = o.lang
	}
	return cfg, nil
}

// redisClient connects to Redis, or returns nil with a warning when the
// server is unreachable so scraping still works uncached.
func redisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid redis url %q, running without cache: %v", cfg.RedisURL, err)
		return nil
	}
	client := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without cache: %v", cfg.RedisURL, err)
		client.Close()
		return nil
	}
	return client
}

// buildScraper wires the scraper from config. The returned closer releases
// the Redis connection when one was established.
func buildScraper(ctx context.Context, cfg *config.Config) (*scraper.Scraper, func()) {
	client := leaguestat.NewClient(cfg.HTTPTimeout,
		leaguestat.WithRetries(cfg.MaxRetries, cfg.Backoff, cfg.MaxBackoff))
	reg := registry.New(config.Feeds())

	var pbpCache *cache.PBPCache
	var pub *publisher.StreamPublisher
	closer := func() {}

	if cfg.CacheEnabled || cfg.Publish {
		if rc := redisClient(ctx, cfg); rc != nil {
			if cfg.CacheEnabled {
				pbpCache = cache.New(rc, cfg.CacheTTL)
			}
			if cfg.Publish {
				pub = publisher.NewStreamPublisher(rc)
			}
			closer = func() { rc.Close() }
		}
	}

	m := metrics.New(prometheus.NewRegistry())
	return scraper.New(reg, client, pbpCache, pub, m, cfg.Lang), closer
}
