// Package gamecenter implements the league module for the gc/pxpverbose
// feed family (QMJHL, OHL, WHL). Events arrive as flat records tagged by a
// lowercase event name, with participants nested in snake_case sub-objects
// that vary per event kind.
package gamecenter

import (
	"regexp"
	"strconv"
	"time"

	"github.com/maxtixador/scrapernhl/internal/leagues/rawjson"
	"github.com/maxtixador/scrapernhl/internal/pipeline"
	"github.com/maxtixador/scrapernhl/pkg/contracts"
	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

// Module adapts one gamecenter-family league.
type Module struct {
	league models.League
	name   string
	feed   contracts.FeedConfig
}

// New returns the module for a gamecenter-family league.
func New(league models.League, name string, feed contracts.FeedConfig) *Module {
	return &Module{league: league, name: name, feed: feed}
}

func (m *Module) Key() models.League         { return m.league }
func (m *Module) DisplayName() string        { return m.name }
func (m *Module) Feed() contracts.FeedConfig { return m.feed }

// penaltyPeriodRe pulls the leading period number out of the free-text
// period field penalty records carry ("2nd period" and similar).
var penaltyPeriodRe = regexp.MustCompile(`(\d+)`)

// Extract translates raw pxpverbose records into typed events. Records with
// an unrecognized event tag are kept untouched so downstream stages still
// sort and score them; only a payload that is not a record list is fatal.
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

		e.PeriodLabel = rawjson.Str(rec, "period")
		e.PeriodID = rawjson.Int(rec, "period_id")
		e.SecondsInPeriod = rawjson.Int(rec, "s")
		e.Home = rawjson.Int(rec, "home")
		e.XLocation = rawjson.Float(rec, "x_location")
		e.YLocation = rawjson.Float(rec, "y_location")
		e.ShotType = rawjson.Str(rec, "shot_type")
		e.ShotQuality = rawjson.Str(rec, "shot_quality_description")
		e.Quality = rawjson.Int(rec, "quality")
		e.GoalType = goalType(rec)

		switch e.Type {
		case models.EventGoalieChange:
			m.extractGoalieChange(rec, &e)
		case models.EventFaceoff:
			m.extractFaceoff(rec, &e)
		case models.EventHit:
			setEventTeam(&e, rawjson.Map(rec, "hitter"))
			e.Players[0] = participant(rawjson.Map(rec, "hitter"))
		case models.EventShot, models.EventPenaltyShot:
			setEventTeam(&e, rawjson.Map(rec, "player"))
			e.Players[0] = participant(rawjson.Map(rec, "player"))
			e.Goalie = participant(rawjson.Map(rec, "goalie"))
		case models.EventPenalty:
			m.extractPenalty(rec, &e)
		case models.EventGoal:
			m.extractGoal(rec, &e)
		case models.EventShootout:
			m.extractShootout(rec, &e)
		}

		events = append(events, e)
	}
	return events, nil
}

// extractGoalieChange tags the change direction. Records occasionally carry
// both IDs; the outgoing goalie wins the single participant slot then.
func (m *Module) extractGoalieChange(rec map[string]any, e *models.Event) {
	e.Team = rawjson.Str(rec, "team_code")
	e.TeamID = rawjson.Int64(rec, "team_id")
	switch {
	case rawjson.Int64(rec, "goalie_out_id") != nil:
		e.Detail = models.String("out")
		e.Players[0] = participant(rawjson.Map(rec, "goalie_out_info"))
	case rawjson.Int64(rec, "goalie_in_id") != nil:
		e.Detail = models.String("in")
		e.Players[0] = participant(rawjson.Map(rec, "goalie_in_info"))
	}
}

// extractFaceoff slots the winner first. A missing home_win flag leaves the
// record unattributed.
func (m *Module) extractFaceoff(rec map[string]any, e *models.Event) {
	hw := rawjson.Int(rec, "home_win")
	if hw == nil {
		return
	}
	home := rawjson.Map(rec, "player_home")
	visitor := rawjson.Map(rec, "player_visitor")
	if *hw == 1 {
		setEventTeam(e, home)
		e.Players[0] = participant(home)
		e.Players[1] = participant(visitor)
	} else {
		setEventTeam(e, visitor)
		e.Players[0] = participant(visitor)
		e.Players[1] = participant(home)
	}
}

func (m *Module) extractPenalty(rec map[string]any, e *models.Event) {
	penalized := rawjson.Map(rec, "player_penalized_info")
	setEventTeam(e, penalized)
	e.Players[0] = participant(penalized)
	e.Players[1] = participant(rawjson.Map(rec, "player_served_info"))

	// Penalty records spell the period out in prose instead of a label.
	if e.PeriodLabel != nil {
		if digits := penaltyPeriodRe.FindString(*e.PeriodLabel); digits != "" {
			if n, err := strconv.Atoi(digits); err == nil {
				e.Period = &n
			}
		}
	}
}

func (m *Module) extractGoal(rec map[string]any, e *models.Event) {
	scorer := rawjson.Map(rec, "goal_scorer")
	setEventTeam(e, scorer)
	e.Players[0] = participant(scorer)
	e.Players[1] = participant(rawjson.Map(rec, "assist1_player"))
	e.Players[2] = participant(rawjson.Map(rec, "assist2_player"))
	e.PlusList = participantList(rawjson.List(rec, "plus"))
	e.MinusList = participantList(rawjson.List(rec, "minus"))
}

// extractShootout attributes the attempt to the shooter's team but leaves
// the shooter slot's own team fields empty, matching the upstream record
// shape.
func (m *Module) extractShootout(rec map[string]any, e *models.Event) {
	shooter := rawjson.Map(rec, "shooter")
	setEventTeam(e, shooter)
	p := participant(shooter)
	p.Team = nil
	p.TeamID = nil
	e.Players[0] = p
	e.Goalie = participant(rawjson.Map(rec, "goalie"))
	e.Shootout = true
}

// Canonicalize runs the gamecenter cleaning pipeline: on-ice flattening,
// period resolution with gap filling, elapsed-time derivation, the canonical
// sort, running scores, coordinate normalization, and optional shot+goal
// merging.
func (m *Module) Canonicalize(events []models.Event, nhlify bool) []models.Event {
	pipeline.FlattenOnIce(events)
	hasOT := pipeline.ResolvePeriods(events)
	pipeline.FillPeriods(events, hasOT)
	pipeline.ComputeElapsed(events)
	pipeline.SortCanonical(events)
	pipeline.TrackScore(events)
	pipeline.NormalizeCoordsGamecenter(events)
	if nhlify {
		events = pipeline.MergeShotGoals(events)
	}
	now := time.Now().UTC()
	for i := range events {
		events[i].ScrapedOn = now
	}
	return events
}

// participant builds a participant from a snake_case player sub-object.
func participant(m map[string]any) models.Participant {
	if m == nil {
		return models.Participant{}
	}
	return models.Participant{
		ID:           rawjson.Int64(m, "player_id"),
		JerseyNumber: rawjson.Int(m, "jersey_number"),
		TeamID:       rawjson.Int64(m, "team_id"),
		Team:         rawjson.Str(m, "team_code"),
		FirstName:    rawjson.Str(m, "first_name"),
		LastName:     rawjson.Str(m, "last_name"),
	}
}

func participantList(list []any) []models.Participant {
	if list == nil {
		return nil
	}
	out := make([]models.Participant, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, participant(m))
	}
	return out
}

func setEventTeam(e *models.Event, m map[string]any) {
	if m == nil {
		return
	}
	e.Team = rawjson.Str(m, "team_code")
	e.TeamID = rawjson.Int64(m, "team_id")
}

// goalType normalizes the strength tag: the feed leaves even-strength goals
// blank and tags empty-netters "EN" without a strength component.
func goalType(rec map[string]any) *string {
	gt := rawjson.Str(rec, "goal_type")
	if gt == nil {
		return nil
	}
	switch *gt {
	case "":
		return models.String("EV")
	case "EN":
		return models.String("EN.EV")
	}
	return gt
}
