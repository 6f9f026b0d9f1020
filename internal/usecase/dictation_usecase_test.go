package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eslsoft/keymantra/internal/dictation"
	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/timer"
)

type dictationFixture struct {
	uc       *dictationUsecase
	sched    *timer.Manual
	now      time.Time
	courseID int64
}

func newDictationFixture(t *testing.T) *dictationFixture {
	t.Helper()
	store := newMemoryStore()
	ctx := context.Background()
	course, _ := memCourses{store}.Create(ctx, &entity.Course{Name: "Basics"})
	for i, answer := range []string{"My name is apple", "good morning"} {
		_, err := memQuestions{store}.AddToCourse(ctx, &entity.CourseQuestion{
			CourseID:      course.ID,
			Title:         fmt.Sprintf("q%d", i+1),
			AnswerContent: strPtr(answer),
		})
		if err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	f := &dictationFixture{sched: timer.NewManual(), now: testNow, courseID: course.ID}
	uc := NewDictationUsecase(memCourses{store}, memQuestions{store}, DictationSettings{SessionTTL: 10 * time.Minute}).(*dictationUsecase)
	uc.sched = f.sched
	uc.clock = func() time.Time { return f.now }
	seq := 0
	uc.newID = func() (string, error) {
		seq++
		return fmt.Sprintf("s%d", seq), nil
	}
	f.uc = uc
	t.Cleanup(uc.CloseAll)
	return f
}

func TestDictationSessionFlow(t *testing.T) {
	f := newDictationFixture(t)
	ctx := context.Background()

	session, view, err := f.uc.Start(ctx, "alice", f.courseID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.ID != "s1" || view.Status != dictation.StatusActive || view.Title != "q1" {
		t.Fatalf("unexpected start: %+v %+v", session, view)
	}

	view, err = f.uc.Input(ctx, "alice", session.ID, "my name is aple", 15)
	if err != nil || view.ActiveSlot != 3 {
		t.Fatalf("Input: %+v %v", view, err)
	}
	view, _ = f.uc.Submit(ctx, "alice", session.ID, false)
	if view.State.AllCorrect || view.Slots[3].Distance != 1 {
		t.Fatalf("expected incorrect last word: %+v", view.Slots)
	}

	f.uc.Input(ctx, "alice", session.ID, "my name is apple", 16)
	view, _ = f.uc.Submit(ctx, "alice", session.ID, false)
	if !view.AdvancePending {
		t.Fatalf("expected pending advance: %+v", view)
	}
	f.sched.Advance(dictation.DefaultAdvanceDelay)

	_, view, err = f.uc.Get(ctx, "alice", session.ID)
	if err != nil || view.Title != "q2" {
		t.Fatalf("expected second question after advance: %+v %v", view, err)
	}
	view, _ = f.uc.Previous(ctx, "alice", session.ID)
	if view.Title != "q1" || view.Input != "" {
		t.Fatalf("previous should reopen q1 fresh: %+v", view)
	}
	f.uc.Next(ctx, "alice", session.ID)
	view, _ = f.uc.Next(ctx, "alice", session.ID)
	if view.Status != dictation.StatusComplete {
		t.Fatalf("expected completion: %+v", view)
	}

	if err := f.uc.End(ctx, "alice", session.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, _, err := f.uc.Get(ctx, "alice", session.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("ended session still reachable: %v", err)
	}
}

func TestDictationSessionsAreOwnerScoped(t *testing.T) {
	f := newDictationFixture(t)
	ctx := context.Background()
	session, _, err := f.uc.Start(ctx, "alice", f.courseID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.uc.Input(ctx, "mallory", session.ID, "x", 1); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("foreign owner should not see the session: %v", err)
	}
	if err := f.uc.End(ctx, "mallory", session.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("foreign owner should not end the session: %v", err)
	}
}

func TestDictationStartUnknownCourse(t *testing.T) {
	f := newDictationFixture(t)
	if _, _, err := f.uc.Start(context.Background(), "alice", 999); !errors.Is(err, entity.ErrCourseNotFound) {
		t.Fatalf("Start on unknown course: %v", err)
	}
	if _, _, err := f.uc.Start(context.Background(), "alice", 0); !errors.Is(err, entity.ErrInvalidCourseID) {
		t.Fatalf("Start on zero course: %v", err)
	}
}

func TestDictationEvictIdle(t *testing.T) {
	f := newDictationFixture(t)
	ctx := context.Background()
	stale, _, _ := f.uc.Start(ctx, "alice", f.courseID)

	f.now = f.now.Add(8 * time.Minute)
	fresh, _, _ := f.uc.Start(ctx, "bob", f.courseID)

	f.now = f.now.Add(5 * time.Minute)
	if n := f.uc.EvictIdle(f.now); n != 1 {
		t.Fatalf("EvictIdle = %d, want 1", n)
	}
	if _, _, err := f.uc.Get(ctx, "alice", stale.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("stale session survived: %v", err)
	}
	if _, _, err := f.uc.Get(ctx, "bob", fresh.ID); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}
