package connectrpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/repository"
	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/infrastructure/auth"
	"github.com/eslsoft/keymantra/internal/infrastructure/database"
	"github.com/eslsoft/keymantra/internal/usecase"
)

type clients struct {
	courses   *keymantrav1connect.CourseServiceClient
	dictation *keymantrav1connect.DictationServiceClient
	users     *keymantrav1connect.UserServiceClient
}

// testIdentity trusts the X-Test-User header so tests can act as several users.
func testIdentity() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			subject := req.Header().Get("X-Test-User")
			if subject == "" {
				subject = auth.LocalSubject
			}
			return next(auth.WithIdentity(ctx, entity.Identity{Subject: subject, Email: subject + "@example.com"}), req)
		}
	}
}

func newTestServer(t *testing.T) clients {
	t.Helper()
	db, cleanup, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(cleanup)
	if err := database.Migrate(context.Background(), db, false); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	courseRepo := repository.NewCourseRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	dictUC := usecase.NewDictationUsecase(courseRepo, questionRepo, usecase.DictationSettings{AdvanceDelay: time.Hour})
	t.Cleanup(dictUC.CloseAll)

	opts := connect.WithInterceptors(testIdentity())
	mux := http.NewServeMux()
	mux.Handle(keymantrav1connect.NewCourseServiceHandler(NewCourseServiceServer(usecase.NewCourseUsecase(courseRepo, questionRepo)), opts))
	mux.Handle(keymantrav1connect.NewDictationServiceHandler(NewDictationServiceServer(dictUC), opts))
	mux.Handle(keymantrav1connect.NewUserServiceHandler(NewUserServiceServer(usecase.NewUserUsecase(repository.NewUserRepository(db))), opts))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return clients{
		courses:   keymantrav1connect.NewCourseServiceClient(srv.Client(), srv.URL),
		dictation: keymantrav1connect.NewDictationServiceClient(srv.Client(), srv.URL),
		users:     keymantrav1connect.NewUserServiceClient(srv.Client(), srv.URL),
	}
}

func strPtr(s string) *string { return &s }

func seed(t *testing.T, c clients) (*v1.Course, []*v1.Question) {
	t.Helper()
	ctx := context.Background()
	course, err := c.courses.CreateCourse(ctx, connect.NewRequest(&v1.CreateCourseRequest{Name: "Unit 1"}))
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	var questions []*v1.Question
	for _, q := range []struct{ title, answer string }{
		{"自我介绍", "My name is apple"},
		{"问候", "good morning"},
	} {
		resp, err := c.courses.AddQuestion(ctx, connect.NewRequest(&v1.AddQuestionRequest{
			CourseId: course.Msg.Id,
			Title:    q.title,
			Answer:   strPtr(q.answer),
		}))
		if err != nil {
			t.Fatalf("AddQuestion: %v", err)
		}
		questions = append(questions, resp.Msg)
	}
	return course.Msg, questions
}

func TestCourseServiceRoundTrip(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()
	course, questions := seed(t, c)

	if questions[0].SortOrder != 1 || questions[1].SortOrder != 2 {
		t.Fatalf("questions should be appended in order: %+v %+v", questions[0], questions[1])
	}

	got, err := c.courses.GetCourse(ctx, connect.NewRequest(&v1.IDRequest{Id: course.Id}))
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if got.Msg.Course.QuestionCount != 2 || len(got.Msg.Questions) != 2 {
		t.Fatalf("unexpected detail: %+v", got.Msg)
	}

	list, err := c.courses.ListCourses(ctx, connect.NewRequest(&v1.ListCoursesRequest{Filter: "name.startsWith('Unit')"}))
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if list.Msg.Pagination.Total != 1 || list.Msg.Pagination.PageNo != 1 || list.Msg.Pagination.PageSize != 20 {
		t.Fatalf("unexpected pagination: %+v", list.Msg.Pagination)
	}

	reordered, err := c.courses.ReorderQuestions(ctx, connect.NewRequest(&v1.ReorderQuestionsRequest{
		CourseId:    course.Id,
		QuestionIds: []int64{questions[1].Id, questions[0].Id},
	}))
	if err != nil {
		t.Fatalf("ReorderQuestions: %v", err)
	}
	if reordered.Msg.Questions[0].Id != questions[1].Id {
		t.Fatalf("reorder not applied: %+v", reordered.Msg.Questions)
	}

	if _, err := c.courses.DeleteCourse(ctx, connect.NewRequest(&v1.IDRequest{Id: course.Id})); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	_, err = c.courses.GetCourse(ctx, connect.NewRequest(&v1.IDRequest{Id: course.Id}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("deleted course: got %v", err)
	}
}

func TestCourseServiceErrors(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()
	course, questions := seed(t, c)

	cases := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"blank name", func() error {
			_, err := c.courses.CreateCourse(ctx, connect.NewRequest(&v1.CreateCourseRequest{Name: "  "}))
			return err
		}, connect.CodeInvalidArgument},
		{"bad filter", func() error {
			_, err := c.courses.ListCourses(ctx, connect.NewRequest(&v1.ListCoursesRequest{Filter: "owner == 'x'"}))
			return err
		}, connect.CodeInvalidArgument},
		{"missing course", func() error {
			_, err := c.courses.ListCourseQuestions(ctx, connect.NewRequest(&v1.ListCourseQuestionsRequest{CourseId: 9999}))
			return err
		}, connect.CodeNotFound},
		{"partial reorder", func() error {
			_, err := c.courses.ReorderQuestions(ctx, connect.NewRequest(&v1.ReorderQuestionsRequest{
				CourseId:    course.Id,
				QuestionIds: []int64{questions[0].Id},
			}))
			return err
		}, connect.CodeFailedPrecondition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := connect.CodeOf(tc.call()); got != tc.want {
				t.Fatalf("code = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDictationServiceFlow(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()
	course, _ := seed(t, c)

	started, err := c.dictation.StartSession(ctx, connect.NewRequest(&v1.StartSessionRequest{CourseId: course.Id}))
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sid := started.Msg.SessionId
	if sid == "" || started.Msg.View.Status != "active" || len(started.Msg.View.Slots) != 4 {
		t.Fatalf("unexpected start: %+v", started.Msg)
	}

	view, err := c.dictation.Input(ctx, connect.NewRequest(&v1.InputRequest{SessionId: sid, Text: "my name is aple", Caret: 15}))
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if view.Msg.ActiveSlot != 3 {
		t.Fatalf("active slot = %d", view.Msg.ActiveSlot)
	}

	view, err = c.dictation.Submit(ctx, connect.NewRequest(&v1.SubmitRequest{SessionId: sid}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if view.Msg.Phase != "submitted" || view.Msg.AllCorrect || view.Msg.Slots[3].Verdict != "incorrect" || view.Msg.Slots[0].Verdict != "correct" {
		t.Fatalf("unexpected verdicts: %+v", view.Msg)
	}

	view, err = c.dictation.Next(ctx, connect.NewRequest(&v1.SessionRequest{SessionId: sid}))
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if view.Msg.Index != 1 || view.Msg.Phase != "answering" || view.Msg.Input != "" {
		t.Fatalf("expected fresh second question: %+v", view.Msg)
	}

	// Another user cannot see the session.
	req := connect.NewRequest(&v1.SessionRequest{SessionId: sid})
	req.Header().Set("X-Test-User", "intruder")
	if _, err := c.dictation.GetSession(ctx, req); connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("foreign session: got %v", err)
	}

	if _, err := c.dictation.EndSession(ctx, connect.NewRequest(&v1.SessionRequest{SessionId: sid})); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := c.dictation.GetSession(ctx, connect.NewRequest(&v1.SessionRequest{SessionId: sid})); connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("ended session: got %v", err)
	}
}

func TestUserServiceSync(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	req := connect.NewRequest(&v1.Empty{})
	req.Header().Set("X-Test-User", "ada")
	first, err := c.users.SyncUser(ctx, req)
	if err != nil {
		t.Fatalf("SyncUser: %v", err)
	}
	if !first.Msg.Created || first.Msg.User.Id != "ada" || first.Msg.User.Name != "ada" {
		t.Fatalf("unexpected first sync: %+v", first.Msg)
	}

	req = connect.NewRequest(&v1.Empty{})
	req.Header().Set("X-Test-User", "ada")
	second, err := c.users.SyncUser(ctx, req)
	if err != nil {
		t.Fatalf("SyncUser: %v", err)
	}
	if second.Msg.Created {
		t.Fatal("second sync must not create")
	}
}
