// Package pipeline implements the per-game canonicalization stages: on-ice
// flattening, period/elapsed-time normalization, the canonical sort,
// rink-relative coordinate normalization, running score computation, and
// optional shot+goal merging. Every stage is a pure in-memory transform over
// a slice of canonical events; the stages hold no state and are safe to run
// concurrently for different games.
package pipeline

import (
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

const regulationPeriodSeconds = 20 * 60

// otPeriodNumbers maps textual overtime labels to canonical period numbers.
// The mapping is monotone: 1st OT is period 4, 9th OT is period 12.
var otPeriodNumbers = map[string]int{
	"1st OT": 4,
	"2nd OT": 5,
	"3rd OT": 6,
	"4th OT": 7,
	"5th OT": 8,
	"6th OT": 9,
	"7th OT": 10,
	"8th OT": 11,
	"9th OT": 12,
}

// ResolvePeriods converts raw period labels into canonical period numbers:
// OT labels via otPeriodNumbers, otherwise a numeric parse, with period_id
// as fallback. Non-numeric residue coerces to nil. It reports whether any
// event carried an OT label, which controls the gap-filling policy.
func ResolvePeriods(events []models.Event) bool {
	hasOT := false
	for i := range events {
		e := &events[i]
		if e.PeriodLabel != nil && strings.Contains(*e.PeriodLabel, "OT") {
			hasOT = true
		}
		if e.Period != nil {
			continue
		}
		if e.PeriodLabel != nil {
			label := strings.TrimSpace(*e.PeriodLabel)
			if n, ok := otPeriodNumbers[label]; ok {
				v := n
				e.Period = &v
				continue
			}
			if n, err := strconv.Atoi(label); err == nil {
				e.Period = &n
				continue
			}
		}
		if e.PeriodID != nil {
			v := *e.PeriodID
			e.Period = &v
		}
	}
	return hasOT
}

// FillPeriods forward-fills nil periods from the previous event of the same
// game, then backward-fills at sequence boundaries. Shootout events are
// excluded: their period is never inherited from regulation or OT rows.
//
// When a game has no OT and periods remain unresolved after both fills, the
// period stays nil and the condition is logged. (The upstream feed's only
// producer of such rows is the shootout, but defaulting blindly to the
// shootout sentinel mislabels genuinely unresolvable gaps.)
func FillPeriods(events []models.Event, hasOT bool) {
	byGame := make(map[int64][]int)
	var order []int64
	for i := range events {
		if events[i].Shootout {
			continue
		}
		gid := events[i].GameID
		if _, ok := byGame[gid]; !ok {
			order = append(order, gid)
		}
		byGame[gid] = append(byGame[gid], i)
	}

	for _, gid := range order {
		idxs := byGame[gid]

		var last *int
		for _, i := range idxs {
			if events[i].Period != nil {
				last = events[i].Period
			} else if last != nil {
				v := *last
				events[i].Period = &v
			}
		}
		var next *int
		for k := len(idxs) - 1; k >= 0; k-- {
			i := idxs[k]
			if events[i].Period != nil {
				next = events[i].Period
			} else if next != nil {
				v := *next
				events[i].Period = &v
			}
		}

		if !hasOT {
			unresolved := 0
			for _, i := range idxs {
				if events[i].Period == nil {
					unresolved++
				}
			}
			if unresolved > 0 {
				log.Printf("[%s] game %d: %d events with unresolvable period, leaving null",
					events[idxs[0]].League, gid, unresolved)
			}
		}
	}
}

// ComputeElapsed derives absolute elapsed seconds from game start for events
// that carry a within-period clock (the gamecenter feed). The period offset
// is clipped at 4 so overtime periods do not inflate the offset past the
// fourth-period boundary. Events that already carry elapsed time (the
// statview feed) are left untouched.
func ComputeElapsed(events []models.Event) {
	for i := range events {
		e := &events[i]
		if e.ElapsedSeconds != nil || e.SecondsInPeriod == nil || e.Period == nil {
			continue
		}
		offset := *e.Period - 1
		if offset > 4 {
			offset = 4
		}
		v := *e.SecondsInPeriod + offset*regulationPeriodSeconds
		e.ElapsedSeconds = &v
	}
}

// SortCanonical establishes the canonical total order: (gameId,
// elapsedTime, orderIdx), non-decreasing. The sort is stable and nil
// elapsed times order last within their game. Ties preserve the original
// relative order; the merge stage depends on genuine post-sort adjacency.
func SortCanonical(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := &events[i], &events[j]
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		at, bt := elapsedKey(a), elapsedKey(b)
		if at != bt {
			return at < bt
		}
		return a.OrderIdx < b.OrderIdx
	})
}

func elapsedKey(e *models.Event) int {
	if e.ElapsedSeconds == nil {
		return math.MaxInt
	}
	return *e.ElapsedSeconds
}

// ParseClock converts a "MM:SS" clock string to total seconds. Returns nil
// for anything unparsable.
func ParseClock(s string) *int {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return nil
	}
	m, err1 := strconv.Atoi(parts[0])
	sec, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	v := m*60 + sec
	return &v
}
