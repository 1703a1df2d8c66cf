package pipeline

import "github.com/maxtixador/scrapernhl/pkg/models"

// FlattenOnIce expands the variable-length plus/minus participant lists of
// goal events into the fixed on-ice slot arrays, preserving list order, and
// derives the skater counts. Events without source lists are untouched, so
// re-applying the stage is a no-op.
func FlattenOnIce(events []models.Event) {
	for i := range events {
		e := &events[i]
		if e.PlusList == nil && e.MinusList == nil {
			continue
		}
		if e.PlusList != nil {
			e.Plus = expandOnIce(e.PlusList)
			n := len(e.PlusList)
			e.NPlus = &n
		}
		if e.MinusList != nil {
			e.Minus = expandOnIce(e.MinusList)
			n := len(e.MinusList)
			e.NMinus = &n
		}
		// Skater counts resolve plus/minus to home/away sides. The
		// scoring side is the event team, so home==1 means plus is the
		// home count.
		if e.NPlus != nil && e.NMinus != nil {
			if e.Home != nil && *e.Home == 1 {
				e.HomeSkaters = copyInt(e.NPlus)
				e.AwaySkaters = copyInt(e.NMinus)
			} else {
				e.HomeSkaters = copyInt(e.NMinus)
				e.AwaySkaters = copyInt(e.NPlus)
			}
		}
	}
}

func expandOnIce(list []models.Participant) models.OnIce {
	var out models.OnIce
	for k, p := range list {
		if k >= models.MaxOnIceSlots {
			break
		}
		out.Players[k] = p
		out.Count = k + 1
	}
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
