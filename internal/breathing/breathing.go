// Package breathing drives the inhale, hold and exhale cadence of the guided
// breathing exercise.
package breathing

import (
	"sync"
	"time"

	"mindcare/internal/timer"
)

type Phase string

const (
	Idle   Phase = "idle"
	Inhale Phase = "inhale"
	Hold   Phase = "hold"
	Exhale Phase = "exhale"
)

const (
	Inhaled = 4 * time.Second
	Held    = 4 * time.Second
	Exhaled = 6 * time.Second

	// CycleLength is one full inhale, hold and exhale.
	CycleLength = Inhaled + Held + Exhaled
)

type State struct {
	Phase   Phase
	Cycles  int
	Running bool
}

// Guide runs at most one cadence at a time. Every Start and Stop moves to a
// new generation; callbacks from an older generation do nothing.
type Guide struct {
	scheduler timer.Scheduler
	observer  func(State)

	mu         sync.Mutex
	generation uint64
	cancel     timer.Cancel
	state      State
}

// New returns an idle guide. observer, if non-nil, sees every state change
// and is never called with the guide's lock held.
func New(scheduler timer.Scheduler, observer func(State)) *Guide {
	return &Guide{
		scheduler: scheduler,
		observer:  observer,
		state:     State{Phase: Idle},
	}
}

// Start begins a fresh cycle at inhale. Starting a running guide restarts
// the current cycle.
func (g *Guide) Start() {
	g.mu.Lock()
	g.stopLocked()
	g.state.Running = true
	generation := g.generation
	g.mu.Unlock()

	g.enter(generation, Inhale)
}

// Stop returns to idle and keeps the completed cycle count.
func (g *Guide) Stop() {
	g.mu.Lock()
	g.stopLocked()
	g.state.Phase = Idle
	g.state.Running = false
	state := g.state
	g.mu.Unlock()

	g.notify(state)
}

// Close stops the guide and resets the count, as when the view goes away.
func (g *Guide) Close() {
	g.mu.Lock()
	g.stopLocked()
	g.state = State{Phase: Idle}
	state := g.state
	g.mu.Unlock()

	g.notify(state)
}

func (g *Guide) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guide) stopLocked() {
	g.generation++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// enter applies phase and schedules the next transition, unless generation
// is stale.
func (g *Guide) enter(generation uint64, phase Phase) {
	g.mu.Lock()
	if generation != g.generation || !g.state.Running {
		g.mu.Unlock()
		return
	}

	var next Phase
	var wait time.Duration
	switch phase {
	case Inhale:
		next, wait = Hold, Inhaled
	case Hold:
		next, wait = Exhale, Held
	case Exhale:
		next, wait = Inhale, Exhaled
	}
	g.state.Phase = phase
	g.cancel = g.scheduler.AfterFunc(wait, func() {
		if next == Inhale {
			g.completeCycle(generation)
			return
		}
		g.enter(generation, next)
	})
	state := g.state
	g.mu.Unlock()

	g.notify(state)
}

func (g *Guide) completeCycle(generation uint64) {
	g.mu.Lock()
	if generation != g.generation || !g.state.Running {
		g.mu.Unlock()
		return
	}
	g.state.Cycles++
	g.mu.Unlock()

	g.enter(generation, Inhale)
}

func (g *Guide) notify(state State) {
	if g.observer != nil {
		g.observer(state)
	}
}
