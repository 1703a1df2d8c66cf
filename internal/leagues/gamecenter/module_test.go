package gamecenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxtixador/scrapernhl/internal/config"
	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

func newTestModule() *Module {
	return New(models.LeagueQMJHL, "Quebec Maritimes Junior Hockey League", config.Feeds()[models.LeagueQMJHL])
}

func playerObj(id int64, first, last, team string) map[string]any {
	return map[string]any{
		"player_id":     float64(id),
		"jersey_number": "9",
		"team_id":       float64(100),
		"team_code":     team,
		"first_name":    first,
		"last_name":     last,
	}
}

func TestExtractRejectsNonArrayPayload(t *testing.T) {
	_, err := newTestModule().Extract(31171, map[string]any{"status": "error"})

	var parseErr *scrapererr.ParsingError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "QMJHL", parseErr.League)
	assert.Equal(t, int64(31171), parseErr.GameID)
}

func TestExtractFaceoffSlotsWinnerFirst(t *testing.T) {
	raw := []any{
		map[string]any{
			"event":          "faceoff",
			"home_win":       "1",
			"player_home":    playerObj(11, "Home", "Center", "HOM"),
			"player_visitor": playerObj(22, "Road", "Center", "VIS"),
		},
		map[string]any{
			"event":          "faceoff",
			"home_win":       "0",
			"player_home":    playerObj(11, "Home", "Center", "HOM"),
			"player_visitor": playerObj(22, "Road", "Center", "VIS"),
		},
	}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)
	require.Len(t, events, 2)

	won := events[0]
	assert.Equal(t, "HOM", *won.Team)
	assert.Equal(t, int64(11), *won.Players[0].ID)
	assert.Equal(t, int64(22), *won.Players[1].ID)

	lost := events[1]
	assert.Equal(t, "VIS", *lost.Team)
	assert.Equal(t, int64(22), *lost.Players[0].ID)
	assert.Equal(t, int64(11), *lost.Players[1].ID)
}

func TestExtractGoalieChangeOutWins(t *testing.T) {
	raw := []any{
		map[string]any{
			"event":           "goalie_change",
			"team_code":       "HOM",
			"team_id":         "100",
			"goalie_in_id":    "31",
			"goalie_in_info":  playerObj(31, "New", "Goalie", "HOM"),
			"goalie_out_id":   "30",
			"goalie_out_info": playerObj(30, "Old", "Goalie", "HOM"),
		},
		map[string]any{
			"event":          "goalie_change",
			"team_code":      "HOM",
			"team_id":        "100",
			"goalie_in_id":   "31",
			"goalie_in_info": playerObj(31, "New", "Goalie", "HOM"),
		},
	}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)

	assert.Equal(t, "out", *events[0].Detail)
	assert.Equal(t, int64(30), *events[0].Players[0].ID)
	assert.Equal(t, "in", *events[1].Detail)
	assert.Equal(t, int64(31), *events[1].Players[0].ID)
}

func TestExtractPenaltyParsesProsePeriod(t *testing.T) {
	raw := []any{map[string]any{
		"event":                 "penalty",
		"period":                "2nd period",
		"player_penalized_info": playerObj(44, "Bad", "Guy", "VIS"),
		"player_served_info":    playerObj(45, "Server", "Guy", "VIS"),
	}}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)

	e := events[0]
	require.NotNil(t, e.Period)
	assert.Equal(t, 2, *e.Period)
	assert.Equal(t, int64(44), *e.Players[0].ID)
	assert.Equal(t, int64(45), *e.Players[1].ID)
	assert.Equal(t, "VIS", *e.Team)
}

func TestExtractGoalTypeNormalization(t *testing.T) {
	raw := []any{
		map[string]any{"event": "goal", "goal_type": "", "goal_scorer": playerObj(1, "A", "B", "HOM")},
		map[string]any{"event": "goal", "goal_type": "EN", "goal_scorer": playerObj(1, "A", "B", "HOM")},
		map[string]any{"event": "goal", "goal_type": "PP", "goal_scorer": playerObj(1, "A", "B", "HOM")},
		map[string]any{"event": "shot"},
	}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)

	assert.Equal(t, "EV", *events[0].GoalType)
	assert.Equal(t, "EN.EV", *events[1].GoalType)
	assert.Equal(t, "PP", *events[2].GoalType)
	assert.Nil(t, events[3].GoalType)
}

func TestExtractShootoutOmitsShooterTeamFields(t *testing.T) {
	raw := []any{map[string]any{
		"event":   "shootout",
		"shooter": playerObj(77, "Shoot", "Out", "VIS"),
		"goalie":  playerObj(30, "Net", "Minder", "HOM"),
	}}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)

	e := events[0]
	assert.True(t, e.Shootout)
	assert.Equal(t, "VIS", *e.Team)
	assert.Equal(t, int64(77), *e.Players[0].ID)
	assert.Nil(t, e.Players[0].Team)
	assert.Nil(t, e.Players[0].TeamID)
	assert.Equal(t, int64(30), *e.Goalie.ID)
	assert.Equal(t, "HOM", *e.Goalie.Team)
}

func TestExtractKeepsUnknownEventKinds(t *testing.T) {
	raw := []any{map[string]any{"event": "icing", "period": "1", "s": "300"}}

	events, err := newTestModule().Extract(1, raw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventType("icing"), events[0].Type)
	assert.Equal(t, 300, *events[0].SecondsInPeriod)
}

func TestCanonicalizeMergesShotIntoGoal(t *testing.T) {
	raw := []any{
		map[string]any{
			"event": "faceoff", "period": "2", "s": float64(0), "home_win": "1",
			"player_home":    playerObj(11, "Home", "Center", "HOM"),
			"player_visitor": playerObj(22, "Road", "Center", "VIS"),
		},
		map[string]any{
			"event": "shot", "period": "2", "s": float64(30), "home": "1",
			"x_location": float64(90), "y_location": float64(150),
			"player": playerObj(11, "Home", "Center", "HOM"),
			"goalie": playerObj(30, "Net", "Minder", "VIS"),
		},
		map[string]any{
			"event": "goal", "period": "2", "s": float64(30), "home": "1",
			"goal_type":   "",
			"goal_scorer": playerObj(11, "Home", "Center", "HOM"),
			"plus":        []any{playerObj(11, "Home", "Center", "HOM")},
			"minus":       []any{playerObj(22, "Road", "Center", "VIS")},
		},
	}

	module := newTestModule()
	events, err := module.Extract(31171, raw)
	require.NoError(t, err)

	events = module.Canonicalize(events, true)

	require.Len(t, events, 2)
	goal := events[1]
	assert.Equal(t, models.EventGoal, goal.Type)
	require.NotNil(t, goal.ElapsedSeconds)
	assert.Equal(t, 1230, *goal.ElapsedSeconds)
	// goalie and coordinates came from the absorbed shot
	require.NotNil(t, goal.Goalie.ID)
	assert.Equal(t, int64(30), *goal.Goalie.ID)
	require.NotNil(t, goal.XNorm)
	assert.InDelta(t, 510, *goal.XNorm, 1e-9)
	assert.Equal(t, "EV", *goal.GoalType)
	assert.Equal(t, 1, goal.ScoreHome)
	assert.Equal(t, 0, goal.ScoreAway)
	assert.Equal(t, []int{0, 1}, []int{events[0].OrderIdx, events[1].OrderIdx})
	assert.False(t, goal.ScrapedOn.IsZero())
}

func TestCanonicalizeWithoutMergeKeepsBothRows(t *testing.T) {
	raw := []any{
		map[string]any{
			"event": "shot", "period": "1", "s": float64(100), "home": "0",
			"player": playerObj(22, "Road", "Center", "VIS"),
		},
		map[string]any{
			"event": "goal", "period": "1", "s": float64(100), "home": "0",
			"goal_scorer": playerObj(22, "Road", "Center", "VIS"),
		},
	}

	module := newTestModule()
	events, err := module.Extract(1, raw)
	require.NoError(t, err)

	events = module.Canonicalize(events, false)

	require.Len(t, events, 2)
	assert.Equal(t, models.EventShot, events[0].Type)
	assert.Equal(t, models.EventGoal, events[1].Type)
	assert.Equal(t, 1, events[1].ScoreAway)
}
