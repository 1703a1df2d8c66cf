package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

func shotAt(game int64, elapsed, idx int) models.Event {
	return models.Event{
		GameID:         game,
		Type:           models.EventShot,
		ElapsedSeconds: models.Int(elapsed),
		OrderIdx:       idx,
	}
}

func goalAt(game int64, elapsed, idx int) models.Event {
	return models.Event{
		GameID:         game,
		Type:           models.EventGoal,
		ElapsedSeconds: models.Int(elapsed),
		OrderIdx:       idx,
	}
}

func TestMergeShotGoalsAbsorbsAdjacentShot(t *testing.T) {
	shot := shotAt(1, 1230, 0)
	shot.XLocation = models.Float(510)
	shot.ShotType = models.String("Wrist")
	shot.Goalie = models.Participant{ID: models.Int64(99)}

	goal := goalAt(1, 1230, 1)
	goal.GoalType = models.String("EV")

	events := MergeShotGoals([]models.Event{shot, goal})

	require.Len(t, events, 1)
	got := events[0]
	assert.Equal(t, models.EventGoal, got.Type)
	assert.Equal(t, "EV", *got.GoalType)
	assert.Equal(t, 510.0, *got.XLocation)
	assert.Equal(t, "Wrist", *got.ShotType)
	require.NotNil(t, got.Goalie.ID)
	assert.Equal(t, int64(99), *got.Goalie.ID)
	assert.Equal(t, 0, got.OrderIdx)
}

func TestMergeShotGoalsKeepsGoalFields(t *testing.T) {
	shot := shotAt(1, 100, 0)
	shot.Players[0] = models.Participant{ID: models.Int64(5), LastName: models.String("Shooter")}

	goal := goalAt(1, 100, 1)
	goal.Players[0] = models.Participant{ID: models.Int64(8), LastName: models.String("Scorer")}

	events := MergeShotGoals([]models.Event{shot, goal})

	require.Len(t, events, 1)
	assert.Equal(t, int64(8), *events[0].Players[0].ID)
	assert.Equal(t, "Scorer", *events[0].Players[0].LastName)
}

func TestMergeShotGoalsRequiresSameGameAndTime(t *testing.T) {
	events := MergeShotGoals([]models.Event{
		shotAt(1, 100, 0),
		goalAt(2, 100, 1),
		shotAt(2, 200, 2),
		goalAt(2, 201, 3),
	})
	assert.Len(t, events, 4)
}

func TestMergeShotGoalsIgnoresNilElapsed(t *testing.T) {
	shot := shotAt(1, 0, 0)
	shot.ElapsedSeconds = nil
	goal := goalAt(1, 0, 1)
	goal.ElapsedSeconds = nil

	events := MergeShotGoals([]models.Event{shot, goal})
	assert.Len(t, events, 2)
}

func TestMergeShotGoalsNeverCascades(t *testing.T) {
	// shot, goal, goal at the same instant: only the first goal absorbs.
	events := MergeShotGoals([]models.Event{
		shotAt(1, 500, 0),
		goalAt(1, 500, 1),
		goalAt(1, 500, 2),
	})

	require.Len(t, events, 2)
	assert.Equal(t, models.EventGoal, events[0].Type)
	assert.Equal(t, models.EventGoal, events[1].Type)
	assert.Equal(t, []int{0, 1}, []int{events[0].OrderIdx, events[1].OrderIdx})
}

func TestMergeShotGoalsPenaltyShotDonates(t *testing.T) {
	ps := models.Event{GameID: 1, Type: models.EventPenaltyShot, ElapsedSeconds: models.Int(777), OrderIdx: 0}
	ps.ShotType = models.String("Deke")

	events := MergeShotGoals([]models.Event{ps, goalAt(1, 777, 1)})

	require.Len(t, events, 1)
	assert.Equal(t, "Deke", *events[0].ShotType)
}

func TestMergeShotGoalsPreservesScores(t *testing.T) {
	shot := shotAt(1, 100, 0)
	shot.ScoreHome = 0
	goal := goalAt(1, 100, 1)
	goal.ScoreHome = 1

	events := MergeShotGoals([]models.Event{shot, goal})
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].ScoreHome)
}

func TestRetypeOrMergeStatviewRetypesFlaggedShots(t *testing.T) {
	flagged := shotAt(1, 100, 0)
	flagged.IsGoal = models.Bool(true)
	plain := shotAt(1, 200, 1)
	plain.IsGoal = models.Bool(false)

	events := RetypeOrMergeStatview([]models.Event{flagged, plain})

	require.Len(t, events, 2)
	assert.Equal(t, models.EventGoal, events[0].Type)
	assert.Equal(t, models.EventShot, events[1].Type)
}

func TestRetypeOrMergeStatviewMergesWhenGoalsPresent(t *testing.T) {
	shot := shotAt(1, 100, 0)
	shot.ShotType = models.String("Snap")

	events := RetypeOrMergeStatview([]models.Event{shot, goalAt(1, 100, 1)})

	require.Len(t, events, 1)
	assert.Equal(t, models.EventGoal, events[0].Type)
	assert.Equal(t, "Snap", *events[0].ShotType)
}
