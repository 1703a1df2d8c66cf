package pipeline

import "github.com/maxtixador/scrapernhl/pkg/models"

// TrackScore walks the (already sorted) stream and stamps the running score
// on every event. The snapshot is inclusive: a goal event carries the score
// that includes itself. Events without a home/visitor flag never move the
// counters, so feeds that omit the flag keep 0-0 throughout.
func TrackScore(events []models.Event) {
	type tally struct{ home, away int }
	scores := make(map[int64]*tally)

	for i := range events {
		e := &events[i]
		t := scores[e.GameID]
		if t == nil {
			t = &tally{}
			scores[e.GameID] = t
		}
		if e.Type == models.EventGoal && e.Home != nil {
			if *e.Home == 1 {
				t.home++
			} else {
				t.away++
			}
		}
		e.ScoreHome = t.home
		e.ScoreAway = t.away
	}
}
