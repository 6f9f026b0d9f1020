package dictation

// Phase is the answering phase of the current question.
type Phase int

const (
	Answering Phase = iota
	Submitted
)

func (p Phase) String() string {
	if p == Submitted {
		return "submitted"
	}
	return "answering"
}

// State is the per-question state: Answering, or Submitted with its aggregate verdict.
type State struct {
	Phase      Phase
	AllCorrect bool
}

// EventKind enumerates the inputs of the state machine.
type EventKind int

const (
	EventEdit EventKind = iota
	EventCaret
	EventSubmit
	EventNavigate
)

// Event is one input to Transition. For EventSubmit, AllCorrect carries the
// matcher's aggregate and Composing marks a keystroke that only commits an
// in-progress IME composition.
type Event struct {
	Kind       EventKind
	Composing  bool
	AllCorrect bool
}

// Transition returns the state that follows s after e.
func Transition(s State, e Event) State {
	switch e.Kind {
	case EventEdit, EventNavigate:
		return State{Phase: Answering}
	case EventSubmit:
		if e.Composing {
			return s
		}
		return State{Phase: Submitted, AllCorrect: e.AllCorrect}
	default:
		return s
	}
}

// ShouldAdvance reports whether s schedules an automatic move to the next question.
func (s State) ShouldAdvance() bool {
	return s.Phase == Submitted && s.AllCorrect
}

// Status describes what the session is currently showing.
type Status int

const (
	// StatusLoading means no question list has been delivered yet.
	StatusLoading Status = iota
	// StatusEmpty means the course has no questions.
	StatusEmpty
	// StatusActive means a playable question is shown.
	StatusActive
	// StatusUnplayable means the current question has no usable answer.
	StatusUnplayable
	// StatusComplete means the learner moved past the last question.
	StatusComplete
)

var statusNames = [...]string{"loading", "empty", "active", "unplayable", "complete"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}
