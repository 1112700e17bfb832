package animation

import (
	"fmt"
	"math"
)

// maxSweep keeps a full arc drawable: SVG cannot express a closed circle
// with a single arc command.
const maxSweep = 0.9999

// Arc is an SVG arc that starts at twelve o'clock.
type Arc struct {
	StartX, StartY float64
	EndX, EndY     float64
	LargeArc       bool
	Clockwise      bool
	Path           string
}

// ArcFor draws fraction of the circle centred on (cx, cy). Positive values
// sweep clockwise, negative ones counter-clockwise.
func ArcFor(fraction float64, sweepNegative bool, cx, cy, r float64) Arc {
	fraction = math.Min(clamp01(fraction), maxSweep)
	angle := 2 * math.Pi * fraction
	dir := 1.0
	if sweepNegative {
		dir = -1
	}

	a := Arc{
		StartX:    cx,
		StartY:    cy - r,
		EndX:      cx + dir*r*math.Sin(angle),
		EndY:      cy - r*math.Cos(angle),
		LargeArc:  fraction > 0.5,
		Clockwise: !sweepNegative,
	}
	a.Path = fmt.Sprintf("M %.3f %.3f A %.3f %.3f 0 %d %d %.3f %.3f",
		a.StartX, a.StartY, r, r, flag(a.LargeArc), flag(a.Clockwise), a.EndX, a.EndY)
	return a
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
