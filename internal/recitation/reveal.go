// Package recitation implements the press-and-hold reveal used by the
// flashcard mode: the answer is shown only after the learner keeps the card
// pressed for the hold duration.
package recitation

import (
	"sync"
	"time"

	"github.com/eslsoft/keymantra/internal/timer"
)

// DefaultHold is the press duration that reveals the answer.
const DefaultHold = 300 * time.Millisecond

// Phase of a card.
type Phase int

const (
	Hidden Phase = iota
	Pressing
	Revealed
)

func (p Phase) String() string {
	switch p {
	case Pressing:
		return "pressing"
	case Revealed:
		return "revealed"
	default:
		return "hidden"
	}
}

// Reveal tracks one card. Safe for concurrent use.
type Reveal struct {
	mu       sync.Mutex
	hold     time.Duration
	sched    timer.Scheduler
	onReveal func()

	phase   Phase
	pending timer.Handle
	gen     uint64
}

// NewReveal returns a hidden card. onReveal, if set, runs when the hold
// completes, without the lock held.
func NewReveal(hold time.Duration, sched timer.Scheduler, onReveal func()) *Reveal {
	if hold <= 0 {
		hold = DefaultHold
	}
	if sched == nil {
		sched = timer.Real()
	}
	return &Reveal{hold: hold, sched: sched, onReveal: onReveal}
}

// Press starts the hold timer. It is ignored once the card is revealed or
// while a press is already in progress.
func (r *Reveal) Press() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != Hidden {
		return r.phase
	}
	r.phase = Pressing
	r.gen++
	gen := r.gen
	r.pending = r.sched.AfterFunc(r.hold, func() { r.complete(gen) })
	return r.phase
}

// Release ends a press. Releasing before the hold elapses keeps the card hidden.
func (r *Reveal) Release() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	if r.phase == Pressing {
		r.phase = Hidden
	}
	return r.phase
}

// Reset hides the card again, as on navigation to another question.
func (r *Reveal) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.phase = Hidden
}

// Phase returns the current phase.
func (r *Reveal) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Reveal) complete(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.phase != Pressing {
		r.mu.Unlock()
		return
	}
	r.phase = Revealed
	r.pending = nil
	cb := r.onReveal
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (r *Reveal) stopLocked() {
	r.gen++
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}
