// Package schema implements the optional strict check on canonical output.
// The core pipeline never fails on missing data; callers that need
// analysis-grade completeness opt in here.
package schema

import (
	"github.com/maxtixador/scrapernhl/pkg/models"
	"github.com/maxtixador/scrapernhl/pkg/scrapererr"
)

// RequiredColumns are the canonical fields an analysis-ready stream must
// populate in at least one event.
var RequiredColumns = []string{
	"event",
	"eventTeam",
	"x",
	"y",
	"period",
	"elapsedTime",
	"score_home",
	"score_away",
}

// Validate reports the required columns that are absent from every event in
// the stream. Columns present on even a single event pass; per-event gaps
// are expected (not every event carries coordinates or a team).
func Validate(events []models.Event) error {
	if len(events) == 0 {
		return &scrapererr.DataValidationError{Missing: append([]string(nil), RequiredColumns...)}
	}

	present := make(map[string]bool, len(RequiredColumns))
	for i := range events {
		e := &events[i]
		if e.Type != "" {
			present["event"] = true
		}
		if e.Team != nil {
			present["eventTeam"] = true
		}
		if e.X != nil {
			present["x"] = true
		}
		if e.Y != nil {
			present["y"] = true
		}
		if e.Period != nil {
			present["period"] = true
		}
		if e.ElapsedSeconds != nil {
			present["elapsedTime"] = true
		}
	}
	// Running scores always materialize, even as 0-0.
	present["score_home"] = true
	present["score_away"] = true

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &scrapererr.DataValidationError{Missing: missing}
	}
	return nil
}
