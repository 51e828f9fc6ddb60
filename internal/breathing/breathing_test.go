package breathing

import (
	"reflect"
	"testing"
	"time"

	"mindcare/internal/timer"
)

func TestOneCycleTakesFourteenSeconds(t *testing.T) {
	clock := timer.NewManual()
	var phases []Phase
	guide := New(clock, func(s State) { phases = append(phases, s.Phase) })

	guide.Start()
	if got := guide.State(); got.Phase != Inhale || !got.Running {
		t.Fatalf("expected inhale after start, got %+v", got)
	}

	clock.Advance(4 * time.Second)
	if got := guide.State().Phase; got != Hold {
		t.Fatalf("expected hold at 4s, got %s", got)
	}
	clock.Advance(4 * time.Second)
	if got := guide.State().Phase; got != Exhale {
		t.Fatalf("expected exhale at 8s, got %s", got)
	}
	clock.Advance(6*time.Second - time.Millisecond)
	if got := guide.State(); got.Phase != Exhale || got.Cycles != 0 {
		t.Fatalf("cycle completed early: %+v", got)
	}
	clock.Advance(time.Millisecond)
	if got := guide.State(); got.Phase != Inhale || got.Cycles != 1 {
		t.Fatalf("expected a completed cycle at 14s, got %+v", got)
	}

	want := []Phase{Inhale, Hold, Exhale, Inhale}
	if !reflect.DeepEqual(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}

	clock.Advance(2 * CycleLength)
	if got := guide.State().Cycles; got != 3 {
		t.Fatalf("expected 3 cycles after 42s, got %d", got)
	}
}

func TestStopKeepsCountAndCancelsTimer(t *testing.T) {
	clock := timer.NewManual()
	guide := New(clock, nil)

	guide.Start()
	clock.Advance(CycleLength + 5*time.Second)
	guide.Stop()

	if got := guide.State(); got.Phase != Idle || got.Running || got.Cycles != 1 {
		t.Fatalf("unexpected state after stop %+v", got)
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending callbacks, got %d", clock.Pending())
	}

	clock.Advance(time.Minute)
	if got := guide.State(); got.Phase != Idle || got.Cycles != 1 {
		t.Fatalf("stopped guide advanced: %+v", got)
	}
}

func TestStaleCallbackIsIgnoredAfterRestart(t *testing.T) {
	clock := timer.NewManual()
	guide := New(clock, nil)

	guide.Start()
	clock.Advance(3 * time.Second)

	// A callback that escaped cancellation must not touch the new run.
	stale := guide.generation
	guide.Stop()
	guide.Start()
	guide.enter(stale, Exhale)
	guide.completeCycle(stale)
	if got := guide.State(); got.Phase != Inhale || got.Cycles != 0 {
		t.Fatalf("stale callback applied: %+v", got)
	}

	clock.Advance(time.Second)
	if got := guide.State().Phase; got != Inhale {
		t.Fatalf("restart must begin a fresh inhale, got %s at 1s", got)
	}
	clock.Advance(3 * time.Second)
	if got := guide.State().Phase; got != Hold {
		t.Fatalf("expected hold 4s after restart, got %s", got)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected exactly one live callback, got %d", clock.Pending())
	}
}

func TestStartWhileRunningRearms(t *testing.T) {
	clock := timer.NewManual()
	guide := New(clock, nil)

	guide.Start()
	clock.Advance(6 * time.Second)
	guide.Start()

	if got := guide.State().Phase; got != Inhale {
		t.Fatalf("expected inhale after re-arm, got %s", got)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected one pending transition, got %d", clock.Pending())
	}
	clock.Advance(4 * time.Second)
	if got := guide.State().Phase; got != Hold {
		t.Fatalf("expected hold 4s after re-arm, got %s", got)
	}
}

func TestCloseResetsCount(t *testing.T) {
	clock := timer.NewManual()
	var last State
	guide := New(clock, func(s State) { last = s })

	guide.Start()
	clock.Advance(2 * CycleLength)
	guide.Close()

	if got := guide.State(); got != (State{Phase: Idle}) {
		t.Fatalf("unexpected state after close %+v", got)
	}
	if last != (State{Phase: Idle}) {
		t.Fatalf("observer missed close: %+v", last)
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending callbacks, got %d", clock.Pending())
	}
}
