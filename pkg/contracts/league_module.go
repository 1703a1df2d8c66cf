package contracts

import (
	"fmt"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

// FeedType selects which HockeyTech API shape a league speaks.
type FeedType string

const (
	// FeedGameCenter is the gc/pxpverbose feed (QMJHL, OHL, WHL): a flat
	// record per event keyed by lowercase event-type name with
	// type-specific sub-objects.
	FeedGameCenter FeedType = "gc"
	// FeedStatview is the statviewfeed shape (AHL, PWHL): {event, details}.
	FeedStatview FeedType = "statviewfeed"
)

// FeedConfig holds the per-league API endpoint parameters.
type FeedConfig struct {
	Type       FeedType
	BaseURL    string
	ClientCode string
	APIKey     string
}

// URL builds the play-by-play endpoint for a game.
func (f FeedConfig) URL(gameID int64, lang string) string {
	switch f.Type {
	case FeedStatview:
		return fmt.Sprintf(
			"%sindex.php?feed=statviewfeed&view=gameCenterPlayByPlay&game_id=%d&key=%s&client_code=%s&lang=%s&league_id=",
			f.BaseURL, gameID, f.APIKey, f.ClientCode, lang,
		)
	default:
		return fmt.Sprintf(
			"%s?feed=gc&key=%s&client_code=%s&game_id=%d&lang_code=%s&fmt=json&tab=pxpverbose",
			f.BaseURL, f.APIKey, f.ClientCode, gameID, lang,
		)
	}
}

// LeagueModule is the pluggable interface for adding a league to the
// canonicalization engine. Each module owns the translation from its wire
// shape to canonical events and the family-specific cleaning pipeline.
type LeagueModule interface {
	// Key returns the league identifier ("QMJHL", "AHL", ...).
	Key() models.League

	// DisplayName returns the human-readable league name.
	DisplayName() string

	// Feed returns the API endpoint configuration for this league.
	Feed() FeedConfig

	// Extract translates the decoded raw feed payload into intermediate
	// typed events, preserving input order in OrderIdx. A payload that is
	// neither array nor object is a ParsingError, fatal for this game.
	Extract(gameID int64, raw any) ([]models.Event, error)

	// Canonicalize runs the family-specific pipeline over the extracted
	// events: temporal normalization, canonical sort, coordinate
	// normalization, running scores, and (when nhlify is set) shot+goal
	// merging. The returned slice satisfies the canonical ordering and
	// score-monotonicity invariants.
	Canonicalize(events []models.Event, nhlify bool) []models.Event
}
