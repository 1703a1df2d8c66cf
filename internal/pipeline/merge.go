package pipeline

import "github.com/maxtixador/scrapernhl/pkg/models"

// MergeShotGoals folds shot events into the goal events they produced.
// A shot (or penalty shot) donates to a goal when the goal immediately
// follows it in the same game at the same non-nil elapsed time. Donors are
// marked against the pre-merge ordering first so a merged goal can never
// itself become a donor for a later goal. Each goal absorbs at most one
// donor; absorbed donors are removed and order indexes are reassigned
// contiguously.
func MergeShotGoals(events []models.Event) []models.Event {
	donor := make([]bool, len(events))
	for i := 0; i+1 < len(events); i++ {
		shot, goal := &events[i], &events[i+1]
		if !shot.Type.IsShot() || goal.Type != models.EventGoal {
			continue
		}
		if shot.GameID != goal.GameID {
			continue
		}
		if shot.ElapsedSeconds == nil || goal.ElapsedSeconds == nil {
			continue
		}
		if *shot.ElapsedSeconds != *goal.ElapsedSeconds {
			continue
		}
		donor[i] = true
	}

	merged := events[:0]
	for i := range events {
		if donor[i] {
			absorb(&events[i+1], &events[i])
			continue
		}
		merged = append(merged, events[i])
	}
	for i := range merged {
		merged[i].OrderIdx = i
	}
	return merged
}

// RetypeOrMergeStatview handles feeds whose goals arrive as flagged shots.
// When the stream carries no distinct goal events, shots flagged as goals
// are retyped in place; otherwise the adjacency merge applies as usual.
func RetypeOrMergeStatview(events []models.Event) []models.Event {
	hasGoals := false
	for i := range events {
		if events[i].Type == models.EventGoal {
			hasGoals = true
			break
		}
	}
	if !hasGoals {
		for i := range events {
			e := &events[i]
			if e.Type == models.EventShot && e.IsGoal != nil && *e.IsGoal {
				e.Type = models.EventGoal
			}
		}
		return events
	}
	return MergeShotGoals(events)
}

// absorb copies every empty field of the goal from the shot, one field at a
// time. Identity fields, order indexes, running scores, and list-shaped
// fields are never touched.
func absorb(goal, shot *models.Event) {
	fillStrP(&goal.Detail, shot.Detail)
	fillStrP(&goal.PeriodLabel, shot.PeriodLabel)
	fillIntP(&goal.PeriodID, shot.PeriodID)
	fillIntP(&goal.Period, shot.Period)
	fillIntP(&goal.SecondsInPeriod, shot.SecondsInPeriod)
	if !goal.Shootout {
		goal.Shootout = shot.Shootout
	}
	fillStrP(&goal.Team, shot.Team)
	fillInt64P(&goal.TeamID, shot.TeamID)
	fillIntP(&goal.Home, shot.Home)
	for i := range goal.Players {
		fillParticipant(&goal.Players[i], shot.Players[i])
	}
	fillParticipant(&goal.Goalie, shot.Goalie)
	fillIntP(&goal.NPlus, shot.NPlus)
	fillIntP(&goal.NMinus, shot.NMinus)
	fillIntP(&goal.HomeSkaters, shot.HomeSkaters)
	fillIntP(&goal.AwaySkaters, shot.AwaySkaters)
	fillFloatP(&goal.XLocation, shot.XLocation)
	fillFloatP(&goal.YLocation, shot.YLocation)
	fillFloatP(&goal.XNorm, shot.XNorm)
	fillFloatP(&goal.YNorm, shot.YNorm)
	fillFloatP(&goal.X, shot.X)
	fillFloatP(&goal.Y, shot.Y)
	fillFloatP(&goal.ShotDistanceFt, shot.ShotDistanceFt)
	fillFloatP(&goal.ShotAngleDeg, shot.ShotAngleDeg)
	fillStrP(&goal.ShotType, shot.ShotType)
	fillStrP(&goal.ShotQuality, shot.ShotQuality)
	fillIntP(&goal.Quality, shot.Quality)
	fillStrP(&goal.GoalType, shot.GoalType)
	fillBoolP(&goal.IsGoal, shot.IsGoal)
}

func fillStrP(dst **string, src *string) {
	if (*dst == nil || **dst == "") && src != nil {
		*dst = src
	}
}

func fillIntP(dst **int, src *int) {
	if *dst == nil {
		*dst = src
	}
}

func fillInt64P(dst **int64, src *int64) {
	if *dst == nil {
		*dst = src
	}
}

func fillFloatP(dst **float64, src *float64) {
	if *dst == nil {
		*dst = src
	}
}

func fillBoolP(dst **bool, src *bool) {
	if *dst == nil {
		*dst = src
	}
}

// fillParticipant copies every unset attribute of the participant from src.
func fillParticipant(dst *models.Participant, src models.Participant) {
	if dst.ID == nil {
		dst.ID = src.ID
	}
	if dst.JerseyNumber == nil {
		dst.JerseyNumber = src.JerseyNumber
	}
	if dst.TeamID == nil {
		dst.TeamID = src.TeamID
	}
	if dst.Team == nil {
		dst.Team = src.Team
	}
	if dst.FirstName == nil {
		dst.FirstName = src.FirstName
	}
	if dst.LastName == nil {
		dst.LastName = src.LastName
	}
}
