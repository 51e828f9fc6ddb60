// Package pending tracks optimistic writes until the backend confirms or
// rejects them.
package pending

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Failed    Status = "failed"
)

type Entry[T any] struct {
	ID        string
	Status    Status
	Value     T
	Err       error
	CreatedAt time.Time
}

type Tracker[T any] struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*Entry[T]
}

func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{entries: make(map[string]*Entry[T])}
}

// Begin records placeholder as pending and returns its id.
func (t *Tracker[T]) Begin(placeholder T) string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = &Entry[T]{
		ID:        id,
		Status:    Pending,
		Value:     placeholder,
		CreatedAt: time.Now().UTC(),
	}
	t.order = append(t.order, id)
	return id
}

// Confirm replaces the placeholder with the backend's canonical value.
func (t *Tracker[T]) Confirm(id string, canonical T) error {
	return t.transition(id, Pending, func(e *Entry[T]) {
		e.Status = Confirmed
		e.Value = canonical
		e.Err = nil
	})
}

func (t *Tracker[T]) Fail(id string, cause error) error {
	return t.transition(id, Pending, func(e *Entry[T]) {
		e.Status = Failed
		e.Err = cause
	})
}

// Retry moves a failed entry back to pending and returns its placeholder.
func (t *Tracker[T]) Retry(id string) (T, error) {
	var value T
	err := t.transition(id, Failed, func(e *Entry[T]) {
		e.Status = Pending
		e.Err = nil
		value = e.Value
	})
	return value, err
}

// Discard drops a failed entry.
func (t *Tracker[T]) Discard(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[id]
	if !ok {
		return fmt.Errorf("pending entry %s not found", id)
	}
	if entry.Status != Failed {
		return fmt.Errorf("pending entry %s is %s, not failed", id, entry.Status)
	}
	t.removeLocked(id)
	return nil
}

// Prune drops every entry with status and returns how many were dropped.
func (t *Tracker[T]) Prune(status Status) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	dropped := 0
	kept := t.order[:0]
	for _, id := range t.order {
		if t.entries[id].Status == status {
			delete(t.entries, id)
			dropped++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return dropped
}

func (t *Tracker[T]) removeLocked(id string) {
	delete(t.entries, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *Tracker[T]) Get(id string) (Entry[T], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[id]
	if !ok {
		return Entry[T]{}, false
	}
	return *entry, true
}

// List returns entries in creation order, optionally only those with one of
// statuses.
func (t *Tracker[T]) List(statuses ...Status) []Entry[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry[T], 0, len(t.order))
	for _, id := range t.order {
		entry := t.entries[id]
		if len(statuses) > 0 && !hasStatus(statuses, entry.Status) {
			continue
		}
		out = append(out, *entry)
	}
	return out
}

func (t *Tracker[T]) transition(id string, from Status, apply func(*Entry[T])) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[id]
	if !ok {
		return fmt.Errorf("pending entry %s not found", id)
	}
	if entry.Status != from {
		return fmt.Errorf("pending entry %s is %s, not %s", id, entry.Status, from)
	}
	apply(entry)
	return nil
}

func hasStatus(statuses []Status, status Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
