package dictation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/eslsoft/keymantra/internal/timer"
)

// DefaultAdvanceDelay is how long a fully correct verdict stays visible before
// the next question is shown.
const DefaultAdvanceDelay = time.Second

// ErrStaleLoad is returned by Load when a newer Load superseded it or the
// controller was closed while the fetch was in flight.
var ErrStaleLoad = errors.New("dictation: load superseded")

// Question is one entry of a course as the engine sees it.
type Question struct {
	ID        int64
	SortOrder int32
	Title     string
	// Answer is nil when the question has no answer attached.
	Answer *string
}

// Fetcher loads the question list of a course.
type Fetcher func(ctx context.Context) ([]Question, error)

// SortQuestions orders questions by sort order, then by id.
func SortQuestions(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].SortOrder == qs[j].SortOrder {
			return qs[i].ID < qs[j].ID
		}
		return qs[i].SortOrder < qs[j].SortOrder
	})
}

// SlotView is the render data of one expected word.
type SlotView struct {
	// Length is the rune count of the expected word, for drawing placeholders.
	Length  int
	Typed   string
	Active  bool
	Verdict *Verdict
	// Distance is the edit distance of an incorrect word, zero otherwise.
	Distance int
}

// View is an immutable snapshot of the session.
type View struct {
	Status         Status
	Index          int
	Total          int
	QuestionID     int64
	SortOrder      int32
	Title          string
	Input          string
	Caret          int
	ActiveSlot     int
	State          State
	Slots          []SlotView
	Extra          []string
	AdvancePending bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithAdvanceDelay overrides DefaultAdvanceDelay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithScheduler replaces the real timer, mostly for tests.
func WithScheduler(s timer.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithListener registers fn to receive the view after an automatic advance.
// fn is called without the controller lock held.
func WithListener(fn func(View)) Option {
	return func(c *Controller) { c.listener = fn }
}

// Controller sequences a learner through an ordered question list. All
// methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	delay    time.Duration
	sched    timer.Scheduler
	listener func(View)

	loaded    bool
	questions []Question
	index     int
	expected  []string
	tracker   *Tracker
	state     State
	result    *Result

	pending timer.Handle
	// gen changes whenever the shown question or its verdict is invalidated;
	// a scheduled advance only fires if gen is unchanged.
	gen     uint64
	loadGen uint64
	closed  bool
}

// NewController returns a controller in the loading state.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		delay:   DefaultAdvanceDelay,
		sched:   timer.Real(),
		tracker: NewTracker(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the question list and installs it unless a newer Load started
// in the meantime, in which case ErrStaleLoad is returned and the result dropped.
func (c *Controller) Load(ctx context.Context, fetch Fetcher) (View, error) {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.mu.Unlock()

	qs, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.loadGen {
		return c.viewLocked(), ErrStaleLoad
	}
	if err != nil {
		return c.viewLocked(), err
	}
	c.setQuestionsLocked(qs)
	return c.viewLocked(), nil
}

// SetQuestions installs qs directly and shows the first question.
func (c *Controller) SetQuestions(qs []Question) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadGen++
	c.setQuestionsLocked(qs)
	return c.viewLocked()
}

func (c *Controller) setQuestionsLocked(qs []Question) {
	c.questions = append([]Question(nil), qs...)
	SortQuestions(c.questions)
	c.loaded = true
	c.enterLocked(0)
}

// Input records the full text of the field and the caret offset (in runes).
// Changing the text returns a submitted question to Answering.
func (c *Controller) Input(text string, caret int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statusLocked() != StatusActive {
		return c.viewLocked()
	}
	if _, changed := c.tracker.Edit(text, caret); changed {
		c.applyLocked(Event{Kind: EventEdit})
	}
	return c.viewLocked()
}

// MoveCaret records a caret movement without an edit.
func (c *Controller) MoveCaret(caret int) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statusLocked() == StatusActive {
		c.tracker.MoveCaret(caret)
	}
	return c.viewLocked()
}

// Submit checks the current input. composing marks the Enter that commits an
// IME composition; such a submit is ignored.
func (c *Controller) Submit(composing bool) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if composing || c.statusLocked() != StatusActive {
		return c.viewLocked()
	}
	res := Check(c.expected, c.tracker.Snapshot().Tokens)
	c.result = &res
	c.applyLocked(Event{Kind: EventSubmit, AllCorrect: res.AllCorrect})
	return c.viewLocked()
}

// Next shows the following question, or the completion state after the last one.
func (c *Controller) Next() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	if c.loaded && c.index < len(c.questions) {
		c.enterLocked(c.index + 1)
	}
	return c.viewLocked()
}

// Previous shows the preceding question. It does nothing on the first question.
func (c *Controller) Previous() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	if c.loaded && c.index > 0 {
		c.enterLocked(min(c.index-1, len(c.questions)-1))
	}
	return c.viewLocked()
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Close cancels any pending advance and discards in-flight loads.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.closed = true
	c.gen++
}

func (c *Controller) applyLocked(e Event) {
	c.state = Transition(c.state, e)
	c.cancelPendingLocked()
	c.gen++
	if e.Kind == EventEdit {
		c.result = nil
	}
	if c.state.ShouldAdvance() && !c.closed {
		c.scheduleAdvanceLocked()
	}
}

func (c *Controller) scheduleAdvanceLocked() {
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.delay, func() { c.autoAdvance(gen) })
}

func (c *Controller) autoAdvance(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || !c.state.ShouldAdvance() {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.enterLocked(c.index + 1)
	view := c.viewLocked()
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(view)
	}
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// enterLocked shows question i (len(questions) means complete) in a fresh
// Answering state.
func (c *Controller) enterLocked(i int) {
	c.cancelPendingLocked()
	c.gen++
	c.index = i
	c.state = Transition(c.state, Event{Kind: EventNavigate})
	c.result = nil
	c.expected = nil
	if i < len(c.questions) && c.questions[i].Answer != nil {
		c.expected = Segment(*c.questions[i].Answer)
	}
	c.tracker = NewTracker(len(c.expected))
}

func (c *Controller) statusLocked() Status {
	switch {
	case !c.loaded:
		return StatusLoading
	case len(c.questions) == 0:
		return StatusEmpty
	case c.index >= len(c.questions):
		return StatusComplete
	case len(c.expected) == 0:
		return StatusUnplayable
	default:
		return StatusActive
	}
}

func (c *Controller) viewLocked() View {
	v := View{
		Status: c.statusLocked(),
		Index:  c.index,
		Total:  len(c.questions),
		State:  c.state,
	}
	if v.Status == StatusActive || v.Status == StatusUnplayable {
		q := c.questions[c.index]
		v.QuestionID = q.ID
		v.SortOrder = q.SortOrder
		v.Title = q.Title
	}
	if v.Status != StatusActive {
		return v
	}

	snap := c.tracker.Snapshot()
	v.Input = snap.Text
	v.Caret = snap.Caret
	v.ActiveSlot = snap.ActiveSlot
	v.AdvancePending = c.pending != nil
	v.Slots = make([]SlotView, len(c.expected))
	for i, want := range c.expected {
		v.Slots[i] = SlotView{
			Length: runeLen(want),
			Typed:  tokenAt(snap.Tokens, i),
			Active: i == snap.ActiveSlot,
		}
		if c.result != nil && c.state.Phase == Submitted {
			verdict := c.result.Slots[i].Verdict
			v.Slots[i].Verdict = &verdict
			v.Slots[i].Distance = c.result.Slots[i].Distance
		}
	}
	if c.result != nil && c.state.Phase == Submitted {
		v.Extra = append([]string(nil), c.result.Extra...)
	}
	return v
}
