package animation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/coachlens/pkg/logger"
	"github.com/okian/coachlens/pkg/metrics"
)

// defaultFrameInterval approximates one display refresh.
const defaultFrameInterval = 16 * time.Millisecond

// Sink receives frames as they are computed.
type Sink func(id string, f Frame)

// Animator drives one radial progress instance. Each run computes frames on a
// ticker until progress reaches 1, the run is stopped, or a new target
// replaces it. A new target restarts the ease from 0; the progress of the
// interrupted run is not carried over.
type Animator struct {
	id       string
	duration time.Duration
	interval time.Duration
	now      func() time.Time
	sink     Sink
	logger   logger.Logger

	// ctrl serializes Start, SetTarget and Stop.
	ctrl sync.Mutex

	mu     sync.Mutex
	state  State
	last   Frame
	cancel context.CancelFunc // nil once the run ends
	done   chan struct{}
	// active is set from Start until Stop; a finished run stays active.
	active bool
}

// New creates an idle animator.
func New(opts ...Option) *Animator {
	a := &Animator{
		id:       uuid.New().String(),
		duration: DefaultDuration,
		interval: defaultFrameInterval,
		now:      time.Now,
		logger:   logger.Get().Named("animation"),
	}
	for _, opt := range opts {
		opt(a)
	}
	closed := make(chan struct{})
	close(closed)
	a.done = closed
	return a
}

// ID identifies the animator instance.
func (a *Animator) ID() string { return a.id }

// Start begins a run towards target, replacing any run in progress.
func (a *Animator) Start(ctx context.Context, target float64) {
	a.ctrl.Lock()
	defer a.ctrl.Unlock()
	a.stopLocked()
	a.startLocked(ctx, target)
}

// SetTarget restarts the animation when target differs from the current one.
// It reports whether a restart happened.
func (a *Animator) SetTarget(ctx context.Context, target float64) bool {
	a.ctrl.Lock()
	defer a.ctrl.Unlock()

	a.mu.Lock()
	same := a.active && a.state.TargetValue == target
	a.mu.Unlock()
	if same {
		return false
	}
	a.stopLocked()
	a.startLocked(ctx, target)
	return true
}

// Stop cancels the current run and waits for its loop to exit.
func (a *Animator) Stop() {
	a.ctrl.Lock()
	defer a.ctrl.Unlock()
	a.stopLocked()
}

// Running reports whether a run is still computing frames.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Done is closed when the current run finishes or is stopped.
func (a *Animator) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

// Current returns the most recently computed frame.
func (a *Animator) Current() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// State returns the current run's state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Animator) startLocked(parent context.Context, target float64) {
	ctx, cancel := context.WithCancel(parent)
	state := State{StartTime: a.now(), TargetValue: target, Duration: a.duration}
	done := make(chan struct{})

	a.mu.Lock()
	a.state = state
	a.cancel = cancel
	a.done = done
	a.active = true
	a.mu.Unlock()

	a.logger.Debug(ctx, "animation started",
		logger.String("id", a.id),
		logger.Float64("target", target),
		logger.Duration("duration", a.duration),
	)
	metrics.IncActiveAnimations()
	go a.run(ctx, cancel, state, done)
}

func (a *Animator) stopLocked() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel = nil
	a.active = false
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-done
}

func (a *Animator) run(ctx context.Context, cancel context.CancelFunc, state State, done chan struct{}) {
	defer func() {
		metrics.DecActiveAnimations()
		a.mu.Lock()
		if a.done == done {
			a.cancel = nil
		}
		a.mu.Unlock()
		cancel()
		close(done)
	}()

	if a.emit(state) {
		return
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.emit(state) {
				a.logger.Debug(ctx, "animation finished", logger.String("id", a.id))
				return
			}
		}
	}
}

// emit computes and publishes one frame. It reports whether the run is done.
func (a *Animator) emit(state State) bool {
	f := At(state, a.now())
	a.mu.Lock()
	a.last = f
	a.mu.Unlock()
	metrics.RecordAnimationFrame()
	if a.sink != nil {
		a.sink(a.id, f)
	}
	return f.Done
}
