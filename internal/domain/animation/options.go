package animation

import (
	"time"

	"github.com/okian/coachlens/pkg/logger"
)

// Option applies a configuration option to the Animator.
type Option func(*Animator)

// WithDuration sets the length of each run.
func WithDuration(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.duration = d
		}
	}
}

// WithFrameInterval sets how often frames are computed.
func WithFrameInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithSink receives every computed frame.
func WithSink(sink Sink) Option {
	return func(a *Animator) {
		a.sink = sink
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}
