package recitation

import (
	"testing"
	"time"

	"github.com/eslsoft/keymantra/internal/timer"
)

func TestRevealAfterHold(t *testing.T) {
	sched := timer.NewManual()
	revealed := 0
	r := NewReveal(0, sched, func() { revealed++ })

	if got := r.Press(); got != Pressing {
		t.Fatalf("Press = %v, want pressing", got)
	}
	sched.Advance(DefaultHold)
	if r.Phase() != Revealed || revealed != 1 {
		t.Fatalf("expected reveal after hold, phase=%v callbacks=%d", r.Phase(), revealed)
	}
	if got := r.Release(); got != Revealed {
		t.Fatalf("release after reveal should keep it revealed, got %v", got)
	}
	if got := r.Press(); got != Revealed {
		t.Fatalf("press on revealed card should be ignored, got %v", got)
	}
}

func TestEarlyReleaseCancels(t *testing.T) {
	sched := timer.NewManual()
	r := NewReveal(500*time.Millisecond, sched, nil)
	r.Press()
	sched.Advance(200 * time.Millisecond)
	if got := r.Release(); got != Hidden {
		t.Fatalf("early release: got %v", got)
	}
	sched.Advance(time.Second)
	if r.Phase() != Hidden {
		t.Fatalf("cancelled hold still revealed the card")
	}
}

func TestResetHidesCard(t *testing.T) {
	sched := timer.NewManual()
	r := NewReveal(0, sched, nil)
	r.Press()
	sched.Advance(DefaultHold)
	r.Reset()
	if r.Phase() != Hidden || sched.Pending() != 0 {
		t.Fatalf("reset should hide the card, phase=%v", r.Phase())
	}
}
