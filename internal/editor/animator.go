package editor

import (
	"time"

	"github.com/Garsondee/battlepath/internal/model"
)

// StepInterval is the time between successive animation frames.
const StepInterval = 60 * time.Millisecond

// Animator replays a path as growing prefixes. Time is supplied by the caller
// through Advance, normally once per update tick.
type Animator struct {
	// OnStep receives each new prefix path[0..i].
	OnStep func(prefix []model.Cell)

	path    []model.Cell
	shown   int
	pending time.Duration
	running bool
}

// NewAnimator returns an idle animator.
func NewAnimator(onStep func([]model.Cell)) *Animator {
	return &Animator{OnStep: onStep}
}

// Running reports whether a replay is in progress.
func (a *Animator) Running() bool { return a.running }

// Prefix returns the part of the path shown so far. It is nil when nothing has
// been emitted since the last Start.
func (a *Animator) Prefix() []model.Cell {
	if a.shown == 0 {
		return nil
	}
	return a.path[:a.shown]
}

// Start begins replaying path. It is a no-op returning false when path is
// empty or a replay is already running.
func (a *Animator) Start(path []model.Cell) bool {
	if a.running || len(path) == 0 {
		return false
	}
	a.path = append(a.path[:0:0], path...)
	a.shown = 0
	a.pending = 0
	a.running = true
	return true
}

// Stop halts the replay and discards accumulated time. The last prefix stays
// visible until the next Start.
func (a *Animator) Stop() {
	a.running = false
	a.pending = 0
}

// Advance moves the clock forward by dt and emits one prefix per elapsed
// interval. It returns the number of prefixes emitted.
func (a *Animator) Advance(dt time.Duration) int {
	if !a.running {
		return 0
	}
	a.pending += dt
	n := 0
	for a.running && a.pending >= StepInterval {
		a.pending -= StepInterval
		a.shown++
		n++
		if a.OnStep != nil {
			a.OnStep(a.path[:a.shown])
		}
		if a.shown >= len(a.path) {
			a.Stop()
		}
	}
	return n
}
