// Package statview implements the league module for the statviewfeed
// family (AHL, PWHL). Events arrive as {event, details} pairs with camelCase
// player objects and pixel-space coordinates, and goals usually arrive as
// shots flagged isGoal rather than distinct goal events.
package statview

import (
	"time"

	"github.com/maxtixador/scrapernhl/internal/leagues/rawjson"
	"github.com/maxtixador/scrapernhl/internal/pipeline"
	"github.com/maxtixador/scrapernhl/pkg/contracts"
	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

// Module adapts one statview-family league.
type Module struct {
	league models.League
	name   string
	feed   contracts.FeedConfig
}

// New returns the module for a statview-family league.
func New(league models.League, name string, feed contracts.FeedConfig) *Module {
	return &Module{league: league, name: name, feed: feed}
}

func (m *Module) Key() models.League         { return m.league }
func (m *Module) DisplayName() string        { return m.name }
func (m *Module) Feed() contracts.FeedConfig { return m.feed }

// qualityRank orders the feed's shot quality descriptions from worst to
// best. Unknown descriptions stay unranked.
var qualityRank = map[string]int{
	"Quality on net": 3,
	"Standard":       2,
	"Not on net":     1,
}

// Extract flattens {event, details} records into typed events. The feed
// reports time as elapsed seconds directly, so no within-period clock
// arithmetic is needed downstream.
func (m *Module) Extract(gameID int64, raw any) ([]models.Event, error) {
	records, err := rawjson.Records(raw)
	if err != nil {
		return nil, &scrapererr.ParsingError{
			League: string(m.league), GameID: gameID, Reason: err.Error(),
		}
	}

	events := make([]models.Event, 0, len(records))
	for i, rec := range records {
		e := models.Event{
			GameID:   gameID,
			League:   m.league,
			OrderIdx: i,
		}
		if t := rawjson.Str(rec, "event"); t != nil {
			e.Type = models.EventType(*t)
		}

		details := rawjson.Map(rec, "details")
		if details == nil {
			events = append(events, e)
			continue
		}

		e.Period = periodNumber(details)
		e.ElapsedSeconds = elapsed(details)
		if e.TeamID = rawjson.Int64(details, "shooterTeamId"); e.TeamID == nil {
			e.TeamID = rawjson.Int64(details, "team_id")
		}
		e.XLocation = rawjson.Float(details, "xLocation")
		e.YLocation = rawjson.Float(details, "yLocation")
		e.ShotType = rawjson.Str(details, "shotType")
		e.ShotQuality = rawjson.Str(details, "shotQuality")
		e.IsGoal = rawjson.Bool(details, "isGoal")
		if e.ShotQuality != nil {
			if q, ok := qualityRank[*e.ShotQuality]; ok {
				e.Quality = &q
			}
		}

		if shooter := rawjson.Map(details, "shooter"); shooter != nil {
			e.Players[0] = participant(shooter)
		}
		e.Goalie = participant(rawjson.Map(details, "goalie"))
		if in := rawjson.Map(details, "goalieComingIn"); in != nil {
			e.Players[0] = participant(in)
		}
		if out := rawjson.Map(details, "goalieGoingOut"); out != nil {
			e.Players[1] = participant(out)
		}

		events = append(events, e)
	}
	return events, nil
}

// Canonicalize runs the statview cleaning pipeline. The feed carries no
// home/visitor flag, so running scores stay 0-0; merging degrades to
// retyping flagged shots when the stream has no distinct goal events.
func (m *Module) Canonicalize(events []models.Event, nhlify bool) []models.Event {
	pipeline.NormalizeCoordsStatview(events)
	pipeline.SortCanonical(events)
	pipeline.TrackScore(events)
	if nhlify {
		events = pipeline.RetypeOrMergeStatview(events)
	}
	now := time.Now().UTC()
	for i := range events {
		events[i].ScrapedOn = now
	}
	return events
}

// periodNumber reads details.period.id, defaulting to 1 when the object or
// id is missing.
func periodNumber(details map[string]any) *int {
	one := 1
	period := rawjson.Map(details, "period")
	if period == nil {
		return &one
	}
	if n := rawjson.Int(period, "id"); n != nil {
		return n
	}
	return &one
}

// elapsed reads details.time, accepting plain seconds or an "MM:SS" clock.
func elapsed(details map[string]any) *int {
	if n := rawjson.Int(details, "time"); n != nil {
		return n
	}
	if s := rawjson.Str(details, "time"); s != nil {
		return pipeline.ParseClock(*s)
	}
	return nil
}

// participant builds a participant from a camelCase player object. The feed
// carries no per-player team fields.
func participant(m map[string]any) models.Participant {
	if m == nil {
		return models.Participant{}
	}
	return models.Participant{
		ID:           rawjson.Int64(m, "id"),
		JerseyNumber: rawjson.Int(m, "jerseyNumber"),
		FirstName:    rawjson.Str(m, "firstName"),
		LastName:     rawjson.Str(m, "lastName"),
	}
}
