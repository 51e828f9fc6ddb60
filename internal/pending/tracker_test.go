package pending

import (
	"errors"
	"testing"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewTracker[string]()

	first := tracker.Begin("draft one")
	second := tracker.Begin("draft two")
	if first == second {
		t.Fatal("ids must be unique")
	}

	if err := tracker.Confirm(first, "saved one"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	cause := errors.New("offline")
	if err := tracker.Fail(second, cause); err != nil {
		t.Fatalf("fail: %v", err)
	}

	entries := tracker.List()
	if len(entries) != 2 || entries[0].ID != first || entries[1].ID != second {
		t.Fatalf("expected creation order, got %+v", entries)
	}
	if entries[0].Status != Confirmed || entries[0].Value != "saved one" {
		t.Fatalf("unexpected confirmed entry %+v", entries[0])
	}
	if entries[1].Status != Failed || !errors.Is(entries[1].Err, cause) || entries[1].Value != "draft two" {
		t.Fatalf("unexpected failed entry %+v", entries[1])
	}

	if failed := tracker.List(Failed); len(failed) != 1 || failed[0].ID != second {
		t.Fatalf("unexpected failed list %+v", failed)
	}

	placeholder, err := tracker.Retry(second)
	if err != nil || placeholder != "draft two" {
		t.Fatalf("retry: %q %v", placeholder, err)
	}
	if entry, _ := tracker.Get(second); entry.Status != Pending || entry.Err != nil {
		t.Fatalf("retry must return to pending, got %+v", entry)
	}
}

func TestTrackerRejectsInvalidTransitions(t *testing.T) {
	tracker := NewTracker[int]()
	id := tracker.Begin(1)

	if _, err := tracker.Retry(id); err == nil {
		t.Fatal("retry requires a failed entry")
	}
	if err := tracker.Discard(id); err == nil {
		t.Fatal("discard requires a failed entry")
	}
	if err := tracker.Confirm(id, 2); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := tracker.Fail(id, errors.New("late")); err == nil {
		t.Fatal("fail after confirm must be rejected")
	}
	if err := tracker.Confirm(id, 3); err == nil {
		t.Fatal("double confirm must be rejected")
	}
	if err := tracker.Confirm("missing", 1); err == nil {
		t.Fatal("unknown id must be rejected")
	}
}

func TestDiscardRemovesFailedEntry(t *testing.T) {
	tracker := NewTracker[string]()
	keep := tracker.Begin("a")
	drop := tracker.Begin("b")
	last := tracker.Begin("c")

	if err := tracker.Fail(drop, errors.New("rejected")); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if err := tracker.Discard(drop); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, ok := tracker.Get(drop); ok {
		t.Fatal("discarded entry still present")
	}
	entries := tracker.List()
	if len(entries) != 2 || entries[0].ID != keep || entries[1].ID != last {
		t.Fatalf("unexpected entries after discard %+v", entries)
	}
}

func TestPruneDropsOnlyMatchingStatus(t *testing.T) {
	tracker := NewTracker[string]()
	saved := tracker.Begin("saved")
	waiting := tracker.Begin("waiting")
	rejected := tracker.Begin("rejected")
	alsoSaved := tracker.Begin("also saved")

	for _, id := range []string{saved, alsoSaved} {
		if err := tracker.Confirm(id, "ok"); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
	if err := tracker.Fail(rejected, errors.New("offline")); err != nil {
		t.Fatalf("fail: %v", err)
	}

	if dropped := tracker.Prune(Confirmed); dropped != 2 {
		t.Fatalf("expected 2 confirmed entries dropped, got %d", dropped)
	}
	entries := tracker.List()
	if len(entries) != 2 || entries[0].ID != waiting || entries[1].ID != rejected {
		t.Fatalf("unexpected entries after prune %+v", entries)
	}
	if _, ok := tracker.Get(saved); ok {
		t.Fatal("pruned entry still present")
	}
	if dropped := tracker.Prune(Confirmed); dropped != 0 {
		t.Fatalf("second prune dropped %d", dropped)
	}
}
