package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

// StreamPublisher publishes freshly canonicalized games to Redis streams so
// downstream consumers (feature builders, live dashboards) can react to new
// play-by-play without polling the cache.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// PublishGame publishes one game's canonical events to the league stream.
func (p *StreamPublisher) PublishGame(ctx context.Context, league models.League, gameID int64, nhlify bool, events []models.Event) error {
	streamKey := fmt.Sprintf("pbp.updates.%s", strings.ToLower(string(league)))

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshaling play-by-play update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"game_id": strconv.FormatInt(gameID, 10),
			"nhlify":  strconv.FormatBool(nhlify),
			"count":   strconv.Itoa(len(events)),
			"data":    string(data),
		},
	}).Err()
}
