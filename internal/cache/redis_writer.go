package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

// DefaultTTL bounds how long a cached play-by-play survives. Finished games
// never change, but feeds occasionally backfill corrections.
const DefaultTTL = time.Hour

// PBPCache stores canonical play-by-play in Redis, keyed per game and per
// merge mode so nhlified and raw renditions never collide.
type PBPCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a play-by-play cache. A zero ttl falls back to DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *PBPCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PBPCache{client: client, ttl: ttl}
}

// Key builds the cache key for one game's canonical output.
func Key(league models.League, gameID int64, nhlify bool) string {
	return fmt.Sprintf("pbp:%s:%d:nhlify=%t", strings.ToLower(string(league)), gameID, nhlify)
}

// Get returns the cached events for a game, or (nil, nil) on a miss.
// Transport and decode failures are reported as CacheError so callers can
// degrade to a refetch.
func (c *PBPCache) Get(ctx context.Context, league models.League, gameID int64, nhlify bool) ([]models.Event, error) {
	key := Key(league, gameID, nhlify)
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, &scrapererr.CacheError{Op: "get", Key: key, Err: err}
	}
	var events []models.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, &scrapererr.CacheError{Op: "decode", Key: key, Err: err}
	}
	return events, nil
}

// Set stores the canonical events for a game with the configured TTL.
func (c *PBPCache) Set(ctx context.Context, league models.League, gameID int64, nhlify bool, events []models.Event) error {
	key := Key(league, gameID, nhlify)
	data, err := json.Marshal(events)
	if err != nil {
		return &scrapererr.CacheError{Op: "encode", Key: key, Err: err}
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return &scrapererr.CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Clear removes every cached play-by-play entry.
func (c *PBPCache) Clear(ctx context.Context) (int64, error) {
	var removed int64
	iter := c.client.Scan(ctx, 0, "pbp:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, &scrapererr.CacheError{Op: "del", Key: iter.Val(), Err: err}
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, &scrapererr.CacheError{Op: "scan", Key: "pbp:*", Err: err}
	}
	return removed, nil
}

// Stats reports per-league counts of cached games.
func (c *PBPCache) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int)
	iter := c.client.Scan(ctx, 0, "pbp:*", 0).Iterator()
	for iter.Next(ctx) {
		parts := strings.SplitN(iter.Val(), ":", 3)
		if len(parts) >= 2 {
			stats[parts[1]]++
		}
	}
	if err := iter.Err(); err != nil {
		return nil, &scrapererr.CacheError{Op: "scan", Key: "pbp:*", Err: err}
	}
	return stats, nil
}
