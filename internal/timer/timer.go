// Package timer provides the delayed-callback abstraction shared by the
// dictation and recitation state machines.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Handle is a scheduled callback that can be cancelled.
type Handle interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the callback before it ran.
	Stop() bool
}

// Scheduler runs f once after d elapses.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Real returns a Scheduler backed by time.AfterFunc.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}

// Manual is a Scheduler driven by Advance. Callbacks run synchronously on the
// goroutine calling Advance, in due-time order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualHandle
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

type manualHandle struct {
	owner *Manual
	due   time.Duration
	seq   int
	fn    func()
	done  bool
}

func (h *manualHandle) Stop() bool {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.done {
		return false
	}
	h.done = true
	return true
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	h := &manualHandle{owner: m, due: m.now + d, seq: m.seq, fn: f}
	m.pending = append(m.pending, h)
	return h
}

// Pending returns the number of callbacks that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.pending {
		if !h.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every callback that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualHandle
	rest := m.pending[:0]
	for _, h := range m.pending {
		switch {
		case h.done:
		case h.due <= m.now:
			h.done = true
			due = append(due, h)
		default:
			rest = append(rest, h)
		}
	}
	m.pending = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	for _, h := range due {
		h.fn()
	}
}
