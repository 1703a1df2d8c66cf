package models

import (
	"fmt"
	"strings"
	"time"
)

// League identifies one of the supported HockeyTech leagues.
type League string

const (
	LeagueQMJHL League = "QMJHL"
	LeagueOHL   League = "OHL"
	LeagueWHL   League = "WHL"
	LeagueAHL   League = "AHL"
	LeaguePWHL  League = "PWHL"
)

// ParseLeague converts a user-supplied league code to a League.
func ParseLeague(s string) (League, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QMJHL", "LHJMQ":
		return LeagueQMJHL, nil
	case "OHL":
		return LeagueOHL, nil
	case "WHL":
		return LeagueWHL, nil
	case "AHL":
		return LeagueAHL, nil
	case "PWHL":
		return LeaguePWHL, nil
	}
	return "", fmt.Errorf("unsupported league: %q (supported: qmjhl, ohl, whl, ahl, pwhl)", s)
}

// EventType is the play-by-play event kind tag.
type EventType string

const (
	EventGoalieChange EventType = "goalie_change"
	EventFaceoff      EventType = "faceoff"
	EventHit          EventType = "hit"
	EventShot         EventType = "shot"
	EventPenaltyShot  EventType = "penaltyshot"
	EventPenalty      EventType = "penalty"
	EventGoal         EventType = "goal"
	EventShootout     EventType = "shootout"
)

// IsShot reports whether the event is a shot-like event that a goal row
// may absorb during nhlify merging.
func (t EventType) IsShot() bool {
	return t == EventShot || t == EventPenaltyShot
}

// NumPlayerSlots is the number of fixed participant slots on a canonical
// event (scorer/assist1/assist2, winner/loser, penalized/served-by, ...).
const NumPlayerSlots = 3

// MaxOnIceSlots caps the flattened on-ice participant arrays. Five skaters
// plus a goalie is the most a side dresses at a goal.
const MaxOnIceSlots = 6

// Participant is one player reference on an event. All fields are nullable:
// missing sub-objects simply leave them nil.
type Participant struct {
	ID           *int64  `json:"player_id,omitempty"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	TeamID       *int64  `json:"team_id,omitempty"`
	Team         *string `json:"team_code,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
}

// IsZero reports whether no attribute of the participant is populated.
func (p Participant) IsZero() bool {
	return p.ID == nil && p.JerseyNumber == nil && p.TeamID == nil &&
		p.Team == nil && p.FirstName == nil && p.LastName == nil
}

// OnIce is the fixed-width expansion of a variable-length on-ice
// participant list. Slot order preserves the source list order.
type OnIce struct {
	Players [MaxOnIceSlots]Participant `json:"players"`
	Count   int                        `json:"count"`
}

// Event is the canonical play-by-play row shared by all five leagues.
// Pointer fields are nullable per the silent-null policy; absent raw data
// never aborts canonicalization.
type Event struct {
	GameID int64     `json:"game_id"`
	League League    `json:"league"`
	Type   EventType `json:"event"`
	Detail *string   `json:"event_detail,omitempty"`

	// Temporal fields. PeriodLabel and PeriodID hold the raw inputs the
	// resolver consumes; Period and ElapsedSeconds are the canonical output.
	PeriodLabel     *string `json:"period_label,omitempty"`
	PeriodID        *int    `json:"period_id,omitempty"`
	Period          *int    `json:"period"`
	SecondsInPeriod *int    `json:"s,omitempty"`
	ElapsedSeconds  *int    `json:"elapsedTime"`
	Shootout        bool    `json:"shootout,omitempty"`

	Team   *string `json:"eventTeam"`
	TeamID *int64  `json:"eventTeamId"`
	// Home is 1 when the acting team is the home side, 0 for the visitor.
	Home *int `json:"home,omitempty"`

	Players [NumPlayerSlots]Participant `json:"players"`
	Goalie  Participant                 `json:"goalie"`

	// Raw on-ice lists (goal events only) and their fixed expansions.
	PlusList    []Participant `json:"plus,omitempty"`
	MinusList   []Participant `json:"minus,omitempty"`
	Plus        OnIce         `json:"plus_on_ice,omitempty"`
	Minus       OnIce         `json:"minus_on_ice,omitempty"`
	NPlus       *int          `json:"n_plus,omitempty"`
	NMinus      *int          `json:"n_minus,omitempty"`
	HomeSkaters *int          `json:"homeSkaters,omitempty"`
	AwaySkaters *int          `json:"awaySkaters,omitempty"`

	// Coordinates: raw feed units, the rink-relative normalized frame,
	// canonical feet, and the shot geometry derived from them.
	XLocation      *float64 `json:"x_location,omitempty"`
	YLocation      *float64 `json:"y_location,omitempty"`
	XNorm          *float64 `json:"x_norm,omitempty"`
	YNorm          *float64 `json:"y_norm,omitempty"`
	X              *float64 `json:"x,omitempty"`
	Y              *float64 `json:"y,omitempty"`
	ShotDistanceFt *float64 `json:"shot_distance_ft,omitempty"`
	ShotAngleDeg   *float64 `json:"shot_angle_deg,omitempty"`

	ShotType    *string `json:"shot_type,omitempty"`
	ShotQuality *string `json:"shot_quality_description,omitempty"`
	Quality     *int    `json:"quality,omitempty"`
	GoalType    *string `json:"goal_type,omitempty"`
	IsGoal      *bool   `json:"is_goal,omitempty"`

	ScoreHome int `json:"score_home"`
	ScoreAway int `json:"score_away"`

	// OrderIdx is the original input position, reassigned contiguously
	// after merge deletions. Sort tiebreaker.
	OrderIdx  int       `json:"orderIdx"`
	ScrapedOn time.Time `json:"scrapedOn"`
}

// Pointer helpers for nullable fields.

func String(s string) *string    { return &s }
func Int(i int) *int             { return &i }
func Int64(i int64) *int64       { return &i }
func Float(f float64) *float64   { return &f }
func Bool(b bool) *bool          { return &b }
