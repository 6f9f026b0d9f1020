package dictation

// Snapshot is the tracker's view of the input field after an event.
type Snapshot struct {
	Text       string
	Caret      int
	Tokens     []string
	ActiveSlot int
}

// Tracker follows the free-form input field of one question. It is not safe
// for concurrent use; the Controller serializes access.
type Tracker struct {
	expected int
	text     string
	caret    int
}

// NewTracker returns a tracker for an answer with expectedCount tokens.
func NewTracker(expectedCount int) *Tracker {
	return &Tracker{expected: expectedCount}
}

// Edit records new field contents and caret. It reports whether the text
// actually changed, which is what invalidates a previous verdict.
func (t *Tracker) Edit(text string, caret int) (Snapshot, bool) {
	changed := text != t.text
	t.text = text
	t.caret = clampCaret(text, caret)
	return t.Snapshot(), changed
}

// MoveCaret records a caret-only movement (click or arrow key).
func (t *Tracker) MoveCaret(caret int) Snapshot {
	t.caret = clampCaret(t.text, caret)
	return t.Snapshot()
}

// Reset clears the field.
func (t *Tracker) Reset() {
	t.text = ""
	t.caret = 0
}

// Snapshot returns the current tokens and active slot.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Text:       t.text,
		Caret:      t.caret,
		Tokens:     splitRuns(t.text),
		ActiveSlot: ActiveSlot(t.text, t.caret, t.expected),
	}
}

// ActiveSlot returns the word slot the caret is in: the number of separator
// runs before the caret, clamped to [0, expectedCount-1].
func ActiveSlot(text string, caret, expectedCount int) int {
	if expectedCount <= 0 {
		return 0
	}
	slot := separatorsBefore(text, clampCaret(text, caret))
	if slot > expectedCount-1 {
		slot = expectedCount - 1
	}
	return slot
}

func clampCaret(text string, caret int) int {
	if caret < 0 {
		return 0
	}
	if n := runeLen(text); caret > n {
		return n
	}
	return caret
}
