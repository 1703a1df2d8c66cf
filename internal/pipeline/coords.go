package pipeline

import (
	"math"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

// Gamecenter feeds report locations on a 600x300-unit half-rink plane.
// The attacking goal sits at (600, 150) in the mirrored frame; dividing by
// three converts plane units to feet.
const (
	gcPlaneWidth  = 600.0
	gcPlaneMidX   = 300.0
	gcPlaneGoalY  = 150.0
	gcUnitsPerFt  = 3.0
)

// Statview feeds report pixel locations on an ~850x400 canvas mapped onto a
// 200x85 ft rink, with center-ice offsets (100, 42.5).
const (
	svCanvasWidth  = 850.0
	svCanvasHeight = 400.0
	svRinkLengthFt = 200.0
	svRinkWidthFt  = 85.0
)

// NormalizeCoordsGamecenter maps gamecenter plane coordinates into the
// canonical rink-relative frame. Home-team events mirror x so a team's
// attacking direction is always increasing x, then shot distance and angle
// are derived against the fixed attacking-goal point. Nil inputs propagate
// to nil outputs.
func NormalizeCoordsGamecenter(events []models.Event) {
	for i := range events {
		e := &events[i]
		if e.XLocation == nil || e.YLocation == nil {
			continue
		}
		xn, yn := *e.XLocation, *e.YLocation
		if e.Home != nil && *e.Home == 1 {
			xn = gcPlaneWidth - xn
		}
		e.XNorm = models.Float(xn)
		e.YNorm = models.Float(yn)
		e.X = models.Float((xn - gcPlaneMidX) / gcUnitsPerFt)
		e.Y = models.Float((yn - gcPlaneGoalY) / gcUnitsPerFt)

		dx := gcPlaneWidth - xn
		dy := gcPlaneGoalY - yn
		e.ShotDistanceFt = models.Float(math.Hypot(dx, dy) / gcUnitsPerFt)
		e.ShotAngleDeg = models.Float(math.Abs(math.Atan2(dy, dx) * 180 / math.Pi))
	}
}

// NormalizeCoordsStatview maps statview pixel coordinates onto the 200x85 ft
// rink without attack mirroring, centers them on the rink midpoint, and
// derives shot distance and angle from the centered frame. Nil inputs
// propagate to nil outputs.
func NormalizeCoordsStatview(events []models.Event) {
	for i := range events {
		e := &events[i]
		if e.XLocation == nil || e.YLocation == nil {
			continue
		}
		x := round2(*e.XLocation / svCanvasWidth * svRinkLengthFt)
		y := round2(*e.YLocation / svCanvasHeight * svRinkWidthFt)
		e.X = models.Float(x)
		e.Y = models.Float(y)

		xn := x - svRinkLengthFt/2
		yn := y - svRinkWidthFt/2
		e.XNorm = models.Float(xn)
		e.YNorm = models.Float(yn)
		e.ShotDistanceFt = models.Float(round2(math.Hypot(xn, yn)))
		e.ShotAngleDeg = models.Float(round2(math.Atan2(math.Abs(yn), math.Abs(xn)) * 180 / math.Pi))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
