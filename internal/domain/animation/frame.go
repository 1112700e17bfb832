// Package animation computes radial progress frames and drives them on a
// cancellable frame loop.
package animation

import (
	"math"
	"time"
)

// DefaultDuration is the length of one animation run.
const DefaultDuration = time.Second

// fullScale is the displayed value that fills the whole circumference.
const fullScale = 100

// State is one animation run towards TargetValue.
type State struct {
	StartTime   time.Time
	TargetValue float64
	Duration    time.Duration
}

// Frame is the displayed value and arc geometry at one instant.
type Frame struct {
	DisplayedValue float64
	ArcFraction    float64
	SweepNegative  bool
	Progress       float64
	Done           bool
}

// Ease is the cubic ease-out 1-(1-t)^3. Input is clamped to [0, 1].
func Ease(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// Progress returns the elapsed share of the run in [0, 1]. A non-positive
// duration is already complete.
func Progress(s State, now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(s.StartTime)) / float64(s.Duration))
}

// At computes the frame for s at now. The displayed value keeps the sign of
// the target and never passes it; at progress 1 it equals the target exactly.
func At(s State, now time.Time) Frame {
	p := Progress(s, now)
	displayed := s.TargetValue * Ease(p)
	return Frame{
		DisplayedValue: displayed,
		ArcFraction:    clamp01(math.Abs(displayed) / fullScale),
		SweepNegative:  s.TargetValue < 0,
		Progress:       p,
		Done:           p >= 1,
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
