package dictation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/keymantra/internal/timer"
)

func strPtr(s string) *string { return &s }

func sampleQuestions() []Question {
	return []Question{
		{ID: 20, SortOrder: 2, Title: "second", Answer: strPtr("good morning")},
		{ID: 10, SortOrder: 1, Title: "first", Answer: strPtr("My name is apple")},
		{ID: 30, SortOrder: 3, Title: "third", Answer: strPtr("bye")},
	}
}

func newTestController(t *testing.T, qs []Question) (*Controller, *timer.Manual) {
	t.Helper()
	sched := timer.NewManual()
	c := NewController(WithScheduler(sched))
	t.Cleanup(c.Close)
	c.SetQuestions(qs)
	return c, sched
}

func TestControllerOrdersQuestionsAndStartsAnswering(t *testing.T) {
	c, _ := newTestController(t, sampleQuestions())
	v := c.View()
	if v.Status != StatusActive || v.QuestionID != 10 || v.Total != 3 {
		t.Fatalf("unexpected first view: %+v", v)
	}
	if v.State.Phase != Answering || v.ActiveSlot != 0 || v.Input != "" {
		t.Fatalf("question should start fresh: %+v", v)
	}
	if len(v.Slots) != 4 || v.Slots[3].Length != 5 {
		t.Fatalf("unexpected slots: %+v", v.Slots)
	}
}

func TestSortQuestionsBreaksTiesByID(t *testing.T) {
	qs := []Question{{ID: 5, SortOrder: 1}, {ID: 2, SortOrder: 1}, {ID: 9, SortOrder: 0}}
	SortQuestions(qs)
	if qs[0].ID != 9 || qs[1].ID != 2 || qs[2].ID != 5 {
		t.Fatalf("unexpected order: %+v", qs)
	}
}

func TestControllerIncorrectSubmitHolds(t *testing.T) {
	c, sched := newTestController(t, sampleQuestions())
	c.Input("my NAME is aple", 15)
	v := c.Submit(false)
	if v.State.Phase != Submitted || v.State.AllCorrect {
		t.Fatalf("expected Submitted(false), got %+v", v.State)
	}
	if v.Slots[3].Verdict == nil || *v.Slots[3].Verdict != Incorrect || *v.Slots[0].Verdict != Correct {
		t.Fatalf("unexpected verdicts: %+v", v.Slots)
	}
	if sched.Pending() != 0 || v.AdvancePending {
		t.Fatal("incorrect submission must not schedule an advance")
	}
}

func TestControllerEditAfterSubmitReturnsToAnswering(t *testing.T) {
	c, _ := newTestController(t, sampleQuestions())
	c.Input("my name is aple", 15)
	c.Submit(false)
	v := c.Input("my name is apple", 16)
	if v.State.Phase != Answering {
		t.Fatalf("edit should clear the verdict, got %+v", v.State)
	}
	for _, slot := range v.Slots {
		if slot.Verdict != nil {
			t.Fatalf("stale verdict still visible: %+v", v.Slots)
		}
	}
	v = c.MoveCaret(0)
	if v.State.Phase != Answering || v.ActiveSlot != 0 {
		t.Fatalf("unexpected view after caret move: %+v", v)
	}
}

func TestControllerCaretMoveKeepsVerdict(t *testing.T) {
	c, _ := newTestController(t, sampleQuestions())
	c.Input("my name is aple", 15)
	c.Submit(false)
	v := c.MoveCaret(3)
	if v.State.Phase != Submitted || v.ActiveSlot != 1 {
		t.Fatalf("caret move should keep the verdict: %+v", v)
	}
}

func TestControllerCompositionSubmitIgnored(t *testing.T) {
	c, _ := newTestController(t, sampleQuestions())
	c.Input("My name is apple", 16)
	v := c.Submit(true)
	if v.State.Phase != Answering {
		t.Fatalf("composition commit must not submit: %+v", v.State)
	}
}

func TestControllerAutoAdvanceAfterCorrectSubmit(t *testing.T) {
	c, sched := newTestController(t, sampleQuestions())
	c.Input("My name is apple.", 17)
	v := c.Submit(false)
	if !v.State.AllCorrect || !v.AdvancePending {
		t.Fatalf("expected pending advance, got %+v", v)
	}

	sched.Advance(999 * time.Millisecond)
	if got := c.View(); got.QuestionID != 10 {
		t.Fatalf("advanced too early: %+v", got)
	}

	sched.Advance(time.Millisecond)
	v = c.View()
	if v.QuestionID != 20 || v.State.Phase != Answering || v.Input != "" {
		t.Fatalf("expected fresh second question, got %+v", v)
	}
}

func TestControllerManualNavigationCancelsAdvance(t *testing.T) {
	c, sched := newTestController(t, sampleQuestions())
	c.Input("My name is apple", 16)
	c.Submit(false)

	v := c.Next()
	if v.QuestionID != 20 || sched.Pending() != 0 {
		t.Fatalf("navigation should cancel the pending advance: %+v pending=%d", v, sched.Pending())
	}
	c.Input("good", 4)

	sched.Advance(5 * time.Second)
	v = c.View()
	if v.QuestionID != 20 || v.Input != "good" || v.State.Phase != Answering {
		t.Fatalf("stale advance corrupted navigated question: %+v", v)
	}
}

func TestControllerEditCancelsAdvance(t *testing.T) {
	c, sched := newTestController(t, sampleQuestions())
	c.Input("My name is apple", 16)
	c.Submit(false)
	c.Input("My name is apples", 17)
	sched.Advance(2 * time.Second)
	if v := c.View(); v.QuestionID != 10 {
		t.Fatalf("edit should cancel the advance: %+v", v)
	}
}

func TestControllerCompletesAfterLastQuestion(t *testing.T) {
	var (
		mu        sync.Mutex
		announced []View
	)
	sched := timer.NewManual()
	c := NewController(WithScheduler(sched), WithListener(func(v View) {
		mu.Lock()
		defer mu.Unlock()
		announced = append(announced, v)
	}))
	defer c.Close()
	c.SetQuestions([]Question{{ID: 1, SortOrder: 1, Title: "only", Answer: strPtr("bye")}})

	c.Input("Bye!", 4)
	c.Submit(false)
	sched.Advance(DefaultAdvanceDelay)

	v := c.View()
	if v.Status != StatusComplete {
		t.Fatalf("expected complete, got %+v", v)
	}
	mu.Lock()
	if len(announced) != 1 || announced[0].Status != StatusComplete {
		t.Fatalf("listener not notified of completion: %+v", announced)
	}
	mu.Unlock()

	if v := c.Submit(false); v.Status != StatusComplete {
		t.Fatalf("submit past the end must be a no-op: %+v", v)
	}
	if v := c.Previous(); v.Status != StatusActive || v.QuestionID != 1 {
		t.Fatalf("previous from complete should reopen the last question: %+v", v)
	}
}

func TestControllerEmptyAndUnplayable(t *testing.T) {
	c, _ := newTestController(t, nil)
	if v := c.View(); v.Status != StatusEmpty {
		t.Fatalf("expected empty status, got %v", v.Status)
	}
	if v := c.Next(); v.Status != StatusEmpty {
		t.Fatalf("navigation on empty list: %v", v.Status)
	}

	c2, _ := newTestController(t, []Question{
		{ID: 1, SortOrder: 1, Title: "no answer"},
		{ID: 2, SortOrder: 2, Title: "blank answer", Answer: strPtr("   ")},
	})
	v := c2.View()
	if v.Status != StatusUnplayable || v.Title != "no answer" {
		t.Fatalf("expected unplayable first question: %+v", v)
	}
	if v := c2.Submit(false); v.State.Phase != Answering {
		t.Fatalf("unplayable question cannot be submitted: %+v", v)
	}
	if v := c2.Next(); v.Status != StatusUnplayable || v.QuestionID != 2 {
		t.Fatalf("expected second unplayable question: %+v", v)
	}
}

func TestControllerCloseStopsAdvance(t *testing.T) {
	sched := timer.NewManual()
	c := NewController(WithScheduler(sched))
	c.SetQuestions(sampleQuestions())
	c.Input("My name is apple", 16)
	c.Submit(false)
	c.Close()
	sched.Advance(time.Minute)
	if v := c.View(); v.QuestionID != 10 {
		t.Fatalf("closed controller advanced: %+v", v)
	}
}

func TestControllerLoadDropsStaleResult(t *testing.T) {
	c := NewController(WithScheduler(timer.NewManual()))
	defer c.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	var staleErr error
	go func() {
		defer wg.Done()
		_, staleErr = c.Load(context.Background(), func(context.Context) ([]Question, error) {
			close(started)
			<-release
			return []Question{{ID: 99, Title: "old", Answer: strPtr("old")}}, nil
		})
	}()
	<-started

	v, err := c.Load(context.Background(), func(context.Context) ([]Question, error) {
		return sampleQuestions(), nil
	})
	if err != nil || v.QuestionID != 10 {
		t.Fatalf("fresh load failed: %+v %v", v, err)
	}

	close(release)
	wg.Wait()
	if !errors.Is(staleErr, ErrStaleLoad) {
		t.Fatalf("expected ErrStaleLoad, got %v", staleErr)
	}
	if v := c.View(); v.QuestionID != 10 {
		t.Fatalf("stale load overwrote questions: %+v", v)
	}
}

func TestControllerLoadError(t *testing.T) {
	c := NewController()
	defer c.Close()
	boom := errors.New("boom")
	v, err := c.Load(context.Background(), func(context.Context) ([]Question, error) { return nil, boom })
	if !errors.Is(err, boom) || v.Status != StatusLoading {
		t.Fatalf("expected loading status and error, got %+v %v", v, err)
	}
}

func TestTransition(t *testing.T) {
	submittedOK := State{Phase: Submitted, AllCorrect: true}
	cases := []struct {
		name string
		from State
		ev   Event
		want State
	}{
		{"submit", State{}, Event{Kind: EventSubmit, AllCorrect: true}, submittedOK},
		{"composing submit", State{}, Event{Kind: EventSubmit, Composing: true}, State{}},
		{"edit clears", submittedOK, Event{Kind: EventEdit}, State{}},
		{"caret keeps", submittedOK, Event{Kind: EventCaret}, submittedOK},
		{"navigate resets", submittedOK, Event{Kind: EventNavigate}, State{}},
	}
	for _, c := range cases {
		if got := Transition(c.from, c.ev); got != c.want {
			t.Errorf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}
