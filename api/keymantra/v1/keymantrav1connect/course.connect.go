package keymantrav1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
)

// CourseServiceName is the fully-qualified name of the CourseService service.
const CourseServiceName = "keymantra.v1.CourseService"

const (
	CourseServiceCreateCourseProcedure        = "/keymantra.v1.CourseService/CreateCourse"
	CourseServiceGetCourseProcedure           = "/keymantra.v1.CourseService/GetCourse"
	CourseServiceListCoursesProcedure         = "/keymantra.v1.CourseService/ListCourses"
	CourseServiceUpdateCourseProcedure        = "/keymantra.v1.CourseService/UpdateCourse"
	CourseServiceDeleteCourseProcedure        = "/keymantra.v1.CourseService/DeleteCourse"
	CourseServiceListCourseQuestionsProcedure = "/keymantra.v1.CourseService/ListCourseQuestions"
	CourseServiceAddQuestionProcedure         = "/keymantra.v1.CourseService/AddQuestion"
	CourseServiceUpdateQuestionProcedure      = "/keymantra.v1.CourseService/UpdateQuestion"
	CourseServiceRemoveQuestionProcedure      = "/keymantra.v1.CourseService/RemoveQuestion"
	CourseServiceReorderQuestionsProcedure    = "/keymantra.v1.CourseService/ReorderQuestions"
)

// CourseServiceHandler is implemented by the course service server.
type CourseServiceHandler interface {
	CreateCourse(context.Context, *connect.Request[v1.CreateCourseRequest]) (*connect.Response[v1.Course], error)
	GetCourse(context.Context, *connect.Request[v1.IDRequest]) (*connect.Response[v1.GetCourseResponse], error)
	ListCourses(context.Context, *connect.Request[v1.ListCoursesRequest]) (*connect.Response[v1.ListCoursesResponse], error)
	UpdateCourse(context.Context, *connect.Request[v1.UpdateCourseRequest]) (*connect.Response[v1.Course], error)
	DeleteCourse(context.Context, *connect.Request[v1.IDRequest]) (*connect.Response[v1.Empty], error)
	ListCourseQuestions(context.Context, *connect.Request[v1.ListCourseQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error)
	AddQuestion(context.Context, *connect.Request[v1.AddQuestionRequest]) (*connect.Response[v1.Question], error)
	UpdateQuestion(context.Context, *connect.Request[v1.UpdateQuestionRequest]) (*connect.Response[v1.Question], error)
	RemoveQuestion(context.Context, *connect.Request[v1.RemoveQuestionRequest]) (*connect.Response[v1.Empty], error)
	ReorderQuestions(context.Context, *connect.Request[v1.ReorderQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error)
}

// NewCourseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCourseServiceHandler(svc CourseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		CourseServiceCreateCourseProcedure:        connect.NewUnaryHandler(CourseServiceCreateCourseProcedure, svc.CreateCourse, opts...),
		CourseServiceGetCourseProcedure:           connect.NewUnaryHandler(CourseServiceGetCourseProcedure, svc.GetCourse, opts...),
		CourseServiceListCoursesProcedure:         connect.NewUnaryHandler(CourseServiceListCoursesProcedure, svc.ListCourses, opts...),
		CourseServiceUpdateCourseProcedure:        connect.NewUnaryHandler(CourseServiceUpdateCourseProcedure, svc.UpdateCourse, opts...),
		CourseServiceDeleteCourseProcedure:        connect.NewUnaryHandler(CourseServiceDeleteCourseProcedure, svc.DeleteCourse, opts...),
		CourseServiceListCourseQuestionsProcedure: connect.NewUnaryHandler(CourseServiceListCourseQuestionsProcedure, svc.ListCourseQuestions, opts...),
		CourseServiceAddQuestionProcedure:         connect.NewUnaryHandler(CourseServiceAddQuestionProcedure, svc.AddQuestion, opts...),
		CourseServiceUpdateQuestionProcedure:      connect.NewUnaryHandler(CourseServiceUpdateQuestionProcedure, svc.UpdateQuestion, opts...),
		CourseServiceRemoveQuestionProcedure:      connect.NewUnaryHandler(CourseServiceRemoveQuestionProcedure, svc.RemoveQuestion, opts...),
		CourseServiceReorderQuestionsProcedure:    connect.NewUnaryHandler(CourseServiceReorderQuestionsProcedure, svc.ReorderQuestions, opts...),
	}
	return "/" + CourseServiceName + "/", routeHandler(routes)
}

// CourseServiceClient calls CourseService over HTTP.
type CourseServiceClient struct {
	createCourse        *connect.Client[v1.CreateCourseRequest, v1.Course]
	getCourse           *connect.Client[v1.IDRequest, v1.GetCourseResponse]
	listCourses         *connect.Client[v1.ListCoursesRequest, v1.ListCoursesResponse]
	updateCourse        *connect.Client[v1.UpdateCourseRequest, v1.Course]
	deleteCourse        *connect.Client[v1.IDRequest, v1.Empty]
	listCourseQuestions *connect.Client[v1.ListCourseQuestionsRequest, v1.ListCourseQuestionsResponse]
	addQuestion         *connect.Client[v1.AddQuestionRequest, v1.Question]
	updateQuestion      *connect.Client[v1.UpdateQuestionRequest, v1.Question]
	removeQuestion      *connect.Client[v1.RemoveQuestionRequest, v1.Empty]
	reorderQuestions    *connect.Client[v1.ReorderQuestionsRequest, v1.ListCourseQuestionsResponse]
}

func NewCourseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CourseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CourseServiceClient{
		createCourse:        connect.NewClient[v1.CreateCourseRequest, v1.Course](httpClient, baseURL+CourseServiceCreateCourseProcedure, opts...),
		getCourse:           connect.NewClient[v1.IDRequest, v1.GetCourseResponse](httpClient, baseURL+CourseServiceGetCourseProcedure, opts...),
		listCourses:         connect.NewClient[v1.ListCoursesRequest, v1.ListCoursesResponse](httpClient, baseURL+CourseServiceListCoursesProcedure, opts...),
		updateCourse:        connect.NewClient[v1.UpdateCourseRequest, v1.Course](httpClient, baseURL+CourseServiceUpdateCourseProcedure, opts...),
		deleteCourse:        connect.NewClient[v1.IDRequest, v1.Empty](httpClient, baseURL+CourseServiceDeleteCourseProcedure, opts...),
		listCourseQuestions: connect.NewClient[v1.ListCourseQuestionsRequest, v1.ListCourseQuestionsResponse](httpClient, baseURL+CourseServiceListCourseQuestionsProcedure, opts...),
		addQuestion:         connect.NewClient[v1.AddQuestionRequest, v1.Question](httpClient, baseURL+CourseServiceAddQuestionProcedure, opts...),
		updateQuestion:      connect.NewClient[v1.UpdateQuestionRequest, v1.Question](httpClient, baseURL+CourseServiceUpdateQuestionProcedure, opts...),
		removeQuestion:      connect.NewClient[v1.RemoveQuestionRequest, v1.Empty](httpClient, baseURL+CourseServiceRemoveQuestionProcedure, opts...),
		reorderQuestions:    connect.NewClient[v1.ReorderQuestionsRequest, v1.ListCourseQuestionsResponse](httpClient, baseURL+CourseServiceReorderQuestionsProcedure, opts...),
	}
}

func (c *CourseServiceClient) CreateCourse(ctx context.Context, req *connect.Request[v1.CreateCourseRequest]) (*connect.Response[v1.Course], error) {
	return c.createCourse.CallUnary(ctx, req)
}

func (c *CourseServiceClient) GetCourse(ctx context.Context, req *connect.Request[v1.IDRequest]) (*connect.Response[v1.GetCourseResponse], error) {
	return c.getCourse.CallUnary(ctx, req)
}

func (c *CourseServiceClient) ListCourses(ctx context.Context, req *connect.Request[v1.ListCoursesRequest]) (*connect.Response[v1.ListCoursesResponse], error) {
	return c.listCourses.CallUnary(ctx, req)
}

func (c *CourseServiceClient) UpdateCourse(ctx context.Context, req *connect.Request[v1.UpdateCourseRequest]) (*connect.Response[v1.Course], error) {
	return c.updateCourse.CallUnary(ctx, req)
}

func (c *CourseServiceClient) DeleteCourse(ctx context.Context, req *connect.Request[v1.IDRequest]) (*connect.Response[v1.Empty], error) {
	return c.deleteCourse.CallUnary(ctx, req)
}

func (c *CourseServiceClient) ListCourseQuestions(ctx context.Context, req *connect.Request[v1.ListCourseQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error) {
	return c.listCourseQuestions.CallUnary(ctx, req)
}

func (c *CourseServiceClient) AddQuestion(ctx context.Context, req *connect.Request[v1.AddQuestionRequest]) (*connect.Response[v1.Question], error) {
	return c.addQuestion.CallUnary(ctx, req)
}

func (c *CourseServiceClient) UpdateQuestion(ctx context.Context, req *connect.Request[v1.UpdateQuestionRequest]) (*connect.Response[v1.Question], error) {
	return c.updateQuestion.CallUnary(ctx, req)
}

func (c *CourseServiceClient) RemoveQuestion(ctx context.Context, req *connect.Request[v1.RemoveQuestionRequest]) (*connect.Response[v1.Empty], error) {
	return c.removeQuestion.CallUnary(ctx, req)
}

func (c *CourseServiceClient) ReorderQuestions(ctx context.Context, req *connect.Request[v1.ReorderQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error) {
	return c.reorderQuestions.CallUnary(ctx, req)
}

func routeHandler(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
