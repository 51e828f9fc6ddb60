// Package timer schedules cancellable callbacks on a real or a virtual clock.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled callback. It reports whether the callback was
// still pending. Calling it more than once is safe.
type Cancel func() bool

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Cancel
}

// Real runs callbacks on the runtime timer, each on its own goroutine.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Cancel {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Manual is a virtual clock. Callbacks run synchronously inside Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending map[uint64]*entry
}

type entry struct {
	due time.Duration
	seq uint64
	f   func()
}

func NewManual() *Manual {
	return &Manual{pending: make(map[uint64]*entry)}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Cancel {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	m.seq++
	id := m.seq
	m.pending[id] = &entry{due: m.now + d, seq: id, f: f}
	m.mu.Unlock()

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.pending[id]; !ok {
			return false
		}
		delete(m.pending, id)
		return true
	}
}

// Advance moves the clock forward by d and fires every callback that comes
// due, in due order, including ones scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.pending, next.seq)
		m.now = next.due
		m.mu.Unlock()

		next.f()
	}
}

// Elapsed is the virtual time since the clock was created.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending counts callbacks that have neither fired nor been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *Manual) nextDue(target time.Duration) *entry {
	due := make([]*entry, 0, len(m.pending))
	for _, e := range m.pending {
		if e.due <= target {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}
