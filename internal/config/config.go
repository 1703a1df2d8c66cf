// Package config holds runtime configuration. Defaults are sane for ad-hoc
// use; a YAML file or environment variables override them, with the
// environment taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/maxtixador/scrapernhl/pkg/contracts"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

// Config is the full runtime configuration.
type Config struct {
	RedisURL     string        `yaml:"redis_url"`
	CacheEnabled bool          `yaml:"cache_enabled"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	Publish      bool          `yaml:"publish"`

	Workers       int           `yaml:"workers"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
	MaxRetries    int           `yaml:"max_retries"`
	Backoff       time.Duration `yaml:"backoff"`
	MaxBackoff    time.Duration `yaml:"max_backoff"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
	Lang        string        `yaml:"lang"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		RedisURL:      "redis://localhost:6379/0",
		CacheEnabled:  true,
		CacheTTL:      time.Hour,
		Publish:       false,
		Workers:       4,
		RatePerSecond: 2,
		Burst:         4,
		MaxRetries:    3,
		Backoff:       500 * time.Millisecond,
		MaxBackoff:    8 * time.Second,
		HTTPTimeout:   10 * time.Second,
		Lang:          "en",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies environment overrides on top of the receiver and returns
// it. Unset variables keep the current values.
func (c *Config) FromEnv() *Config {
	c.RedisURL = getEnv("SCRAPER_REDIS_URL", c.RedisURL)
	c.CacheEnabled = getEnvBool("SCRAPER_CACHE_ENABLED", c.CacheEnabled)
	c.CacheTTL = getEnvDuration("SCRAPER_CACHE_TTL", c.CacheTTL)
	c.Publish = getEnvBool("SCRAPER_PUBLISH", c.Publish)
	c.Workers = getEnvInt("SCRAPER_WORKERS", c.Workers)
	c.RatePerSecond = getEnvFloat("SCRAPER_RATE_PER_SECOND", c.RatePerSecond)
	c.Burst = getEnvInt("SCRAPER_BURST", c.Burst)
	c.MaxRetries = getEnvInt("SCRAPER_MAX_RETRIES", c.MaxRetries)
	c.Backoff = getEnvDuration("SCRAPER_BACKOFF", c.Backoff)
	c.MaxBackoff = getEnvDuration("SCRAPER_MAX_BACKOFF", c.MaxBackoff)
	c.HTTPTimeout = getEnvDuration("SCRAPER_HTTP_TIMEOUT", c.HTTPTimeout)
	c.Lang = getEnv("SCRAPER_LANG", c.Lang)
	return c
}

// Feeds returns the per-league API endpoint configuration. The junior
// leagues speak the gc feed; AHL and PWHL speak statviewfeed.
func Feeds() map[models.League]contracts.FeedConfig {
	return map[models.League]contracts.FeedConfig{
		models.LeagueQMJHL: {
			Type:       contracts.FeedGameCenter,
			BaseURL:    "https://cluster.leaguestat.com/feed/index.php",
			ClientCode: "lhjmq",
			APIKey:     "f322673b6bcae299",
		},
		models.LeagueOHL: {
			Type:       contracts.FeedGameCenter,
			BaseURL:    "https://lscluster.hockeytech.com/feed/",
			ClientCode: "ohl",
			APIKey:     "f1aa699db3d81487",
		},
		models.LeagueWHL: {
			Type:       contracts.FeedGameCenter,
			BaseURL:    "https://lscluster.hockeytech.com/feed/",
			ClientCode: "whl",
			APIKey:     "f1aa699db3d81487",
		},
		models.LeagueAHL: {
			Type:       contracts.FeedStatview,
			BaseURL:    "https://lscluster.hockeytech.com/feed/",
			ClientCode: "ahl",
			APIKey:     "ccb91f29d6744675",
		},
		models.LeaguePWHL: {
			Type:       contracts.FeedStatview,
			BaseURL:    "https://lscluster.hockeytech.com/feed/",
			ClientCode: "pwhl",
			APIKey:     "446521baf8c38984",
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
