// Package export serializes canonical event streams to flat CSV and JSON
// files. The CSV column set is a fixed superset across both feed families
// so exports from different leagues align column-for-column.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

var scalarColumns = []string{
	"game_id", "league", "event", "event_detail",
	"period", "s", "elapsedTime", "shootout",
	"eventTeam", "eventTeamId", "home",
	"n_plus", "n_minus", "homeSkaters", "awaySkaters",
	"x_location", "y_location", "x_norm", "y_norm", "x", "y",
	"shot_distance_ft", "shot_angle_deg",
	"shot_type", "shot_quality_description", "quality",
	"goal_type", "is_goal",
	"score_home", "score_away", "orderIdx", "scrapedOn",
}

var participantAttrs = []string{"Id", "JerseyNumber", "FirstName", "LastName", "Team", "TeamId"}

// Columns returns the fixed CSV header: scalar fields followed by the wide
// participant slots (players, goalie, and both on-ice sides).
func Columns() []string {
	cols := append([]string(nil), scalarColumns...)
	for i := 1; i <= models.NumPlayerSlots; i++ {
		cols = append(cols, participantCols(fmt.Sprintf("player%d", i))...)
	}
	cols = append(cols, participantCols("goalie")...)
	for i := 1; i <= models.MaxOnIceSlots; i++ {
		cols = append(cols, participantCols(fmt.Sprintf("plusPlayer%d", i))...)
	}
	for i := 1; i <= models.MaxOnIceSlots; i++ {
		cols = append(cols, participantCols(fmt.Sprintf("minusPlayer%d", i))...)
	}
	return cols
}

func participantCols(prefix string) []string {
	cols := make([]string, 0, len(participantAttrs))
	for _, attr := range participantAttrs {
		cols = append(cols, prefix+attr)
	}
	return cols
}

// Row flattens one event into CSV cells matching Columns. Nil fields render
// as empty cells.
func Row(e *models.Event) []string {
	row := []string{
		strconv.FormatInt(e.GameID, 10),
		string(e.League),
		string(e.Type),
		strCell(e.Detail),
		intCell(e.Period),
		intCell(e.SecondsInPeriod),
		intCell(e.ElapsedSeconds),
		strconv.FormatBool(e.Shootout),
		strCell(e.Team),
		int64Cell(e.TeamID),
		intCell(e.Home),
		intCell(e.NPlus),
		intCell(e.NMinus),
		intCell(e.HomeSkaters),
		intCell(e.AwaySkaters),
		floatCell(e.XLocation),
		floatCell(e.YLocation),
		floatCell(e.XNorm),
		floatCell(e.YNorm),
		floatCell(e.X),
		floatCell(e.Y),
		floatCell(e.ShotDistanceFt),
		floatCell(e.ShotAngleDeg),
		strCell(e.ShotType),
		strCell(e.ShotQuality),
		intCell(e.Quality),
		strCell(e.GoalType),
		boolCell(e.IsGoal),
		strconv.Itoa(e.ScoreHome),
		strconv.Itoa(e.ScoreAway),
		strconv.Itoa(e.OrderIdx),
		e.ScrapedOn.Format("2006-01-02T15:04:05Z07:00"),
	}
	for i := 0; i < models.NumPlayerSlots; i++ {
		row = append(row, participantCells(e.Players[i])...)
	}
	row = append(row, participantCells(e.Goalie)...)
	for i := 0; i < models.MaxOnIceSlots; i++ {
		row = append(row, participantCells(e.Plus.Players[i])...)
	}
	for i := 0; i < models.MaxOnIceSlots; i++ {
		row = append(row, participantCells(e.Minus.Players[i])...)
	}
	return row
}

// WriteCSV writes the stream as a wide CSV with the fixed header.
func WriteCSV(w io.Writer, events []models.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := range events {
		if err := cw.Write(Row(&events[i])); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the stream as an indented JSON array of canonical
// events.
func WriteJSON(w io.Writer, events []models.Event) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if events == nil {
		events = []models.Event{}
	}
	return enc.Encode(events)
}

func participantCells(p models.Participant) []string {
	return []string{
		int64Cell(p.ID),
		intCell(p.JerseyNumber),
		strCell(p.FirstName),
		strCell(p.LastName),
		strCell(p.Team),
		int64Cell(p.TeamID),
	}
}

func strCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func int64Cell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolCell(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
