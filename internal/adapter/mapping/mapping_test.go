package mapping

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/eslsoft/keymantra/internal/dictation"
	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/pkg/filterexpr"
)

func TestToConnectError(t *testing.T) {
	cases := []struct {
		err  error
		want connect.Code
	}{
		{entity.ErrInvalidCourseName, connect.CodeInvalidArgument},
		{fmt.Errorf("list: %w", filterexpr.ErrInvalidFilter), connect.CodeInvalidArgument},
		{entity.ErrCourseNotFound, connect.CodeNotFound},
		{entity.ErrSessionNotFound, connect.CodeNotFound},
		{entity.ErrDuplicateCourseQuestion, connect.CodeAlreadyExists},
		{errors.Join(entity.ErrInvalidReorder, errors.New("missing id")), connect.CodeFailedPrecondition},
		{entity.ErrUnauthenticated, connect.CodeUnauthenticated},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("disk on fire"), connect.CodeInternal},
		{connect.NewError(connect.CodePermissionDenied, errors.New("nope")), connect.CodePermissionDenied},
	}
	for _, tc := range cases {
		if got := connect.CodeOf(ToConnectError(tc.err)); got != tc.want {
			t.Errorf("ToConnectError(%v) code = %v, want %v", tc.err, got, tc.want)
		}
	}
	if ToConnectError(nil) != nil {
		t.Fatal("nil error should stay nil")
	}
}

func TestToPbSessionViewVerdicts(t *testing.T) {
	incorrect := dictation.Incorrect
	view := dictation.View{
		Status: dictation.StatusActive,
		Total:  2,
		State:  dictation.State{Phase: dictation.Submitted},
		Slots: []dictation.SlotView{
			{Length: 2, Typed: "my"},
			{Length: 4, Typed: "nmae", Verdict: &incorrect, Distance: 2, Active: true},
		},
		Extra: []string{"pie"},
	}
	got := ToPbSessionView(view)
	if got.Status != "active" || got.Phase != "submitted" || got.Total != 2 {
		t.Fatalf("unexpected header: %+v", got)
	}
	if got.Slots[0].Verdict != "" || got.Slots[1].Verdict != "incorrect" || got.Slots[1].Distance != 2 {
		t.Fatalf("unexpected slots: %+v %+v", got.Slots[0], got.Slots[1])
	}
	if len(got.Extra) != 1 || got.Extra[0] != "pie" {
		t.Fatalf("extra tokens lost: %v", got.Extra)
	}
}

func TestToPbQuestionsNeverNil(t *testing.T) {
	if got := ToPbQuestions(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	answer := "bye"
	got := ToPbQuestions([]entity.CourseQuestion{{CourseID: 1, QuestionID: 7, SortOrder: 3, Title: "t", AnswerContent: &answer, CreatedAt: now}})
	if got[0].Id != 7 || got[0].CourseId != 1 || *got[0].Answer != "bye" || !got[0].CreateTime.Equal(now) {
		t.Fatalf("unexpected mapping: %+v", got[0])
	}
}
