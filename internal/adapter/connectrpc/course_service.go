package connectrpc

import (
	"context"

	"connectrpc.com/connect"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/api/keymantra/v1/keymantrav1connect"
	"github.com/eslsoft/keymantra/internal/adapter/mapping"
	"github.com/eslsoft/keymantra/internal/repository"
	"github.com/eslsoft/keymantra/internal/usecase"
)

var _ keymantrav1connect.CourseServiceHandler = (*CourseServiceServer)(nil)

type CourseServiceServer struct {
	uc usecase.CourseUsecase
}

func NewCourseServiceServer(uc usecase.CourseUsecase) *CourseServiceServer {
	return &CourseServiceServer{uc: uc}
}

func (s *CourseServiceServer) CreateCourse(ctx context.Context, req *connect.Request[v1.CreateCourseRequest]) (*connect.Response[v1.Course], error) {
	msg, err := requireMsg(req, "course")
	if err != nil {
		return nil, err
	}
	result, err := s.uc.CreateCourse(ctx, mapping.FromPbCreateCourse(msg))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbCourse(result)), nil
}

func (s *CourseServiceServer) GetCourse(ctx context.Context, req *connect.Request[v1.IDRequest]) (*connect.Response[v1.GetCourseResponse], error) {
	msg, err := requireMsg(req, "id")
	if err != nil {
		return nil, err
	}
	detail, err := s.uc.GetCourse(ctx, msg.GetId())
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbCourseDetail(detail)), nil
}

func (s *CourseServiceServer) ListCourses(ctx context.Context, req *connect.Request[v1.ListCoursesRequest]) (*connect.Response[v1.ListCoursesResponse], error) {
	msg, err := requireMsg(req, "list")
	if err != nil {
		return nil, err
	}
	query := &repository.ListCourseQuery{
		Pagination: convertPagination(msg.GetPagination()),
		FilterOrder: repository.FilterOrder{
			Filter:  msg.GetFilter(),
			OrderBy: msg.GetOrderBy(),
		},
	}
	items, total, err := s.uc.ListCourses(ctx, query)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}

	return connect.NewResponse(&v1.ListCoursesResponse{
		Courses: mapping.ToPbCourses(items),
		Pagination: &v1.PaginationResponse{
			PageNo:   query.PageNo,
			PageSize: query.PageSize,
			Total:    total,
		},
	}), nil
}

func (s *CourseServiceServer) UpdateCourse(ctx context.Context, req *connect.Request[v1.UpdateCourseRequest]) (*connect.Response[v1.Course], error) {
	msg, err := requireMsg(req, "course")
	if err != nil {
		return nil, err
	}
	result, err := s.uc.UpdateCourse(ctx, mapping.FromPbUpdateCourse(msg))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbCourse(result)), nil
}

func (s *CourseServiceServer) DeleteCourse(ctx context.Context, req *connect.Request[v1.IDRequest]) (*connect.Response[v1.Empty], error) {
	msg, err := requireMsg(req, "id")
	if err != nil {
		return nil, err
	}
	if err := s.uc.DeleteCourse(ctx, msg.GetId()); err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.Empty{}), nil
}

func (s *CourseServiceServer) ListCourseQuestions(ctx context.Context, req *connect.Request[v1.ListCourseQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error) {
	msg, err := requireMsg(req, "course")
	if err != nil {
		return nil, err
	}
	items, err := s.uc.ListQuestions(ctx, msg.CourseId)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.ListCourseQuestionsResponse{Questions: mapping.ToPbQuestions(items)}), nil
}

func (s *CourseServiceServer) AddQuestion(ctx context.Context, req *connect.Request[v1.AddQuestionRequest]) (*connect.Response[v1.Question], error) {
	msg, err := requireMsg(req, "question")
	if err != nil {
		return nil, err
	}
	result, err := s.uc.AddQuestion(ctx, mapping.FromPbAddQuestion(msg))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbQuestion(result)), nil
}

func (s *CourseServiceServer) UpdateQuestion(ctx context.Context, req *connect.Request[v1.UpdateQuestionRequest]) (*connect.Response[v1.Question], error) {
	msg, err := requireMsg(req, "question")
	if err != nil {
		return nil, err
	}
	result, err := s.uc.UpdateQuestion(ctx, mapping.FromPbUpdateQuestion(msg))
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(mapping.ToPbQuestion(result)), nil
}

func (s *CourseServiceServer) RemoveQuestion(ctx context.Context, req *connect.Request[v1.RemoveQuestionRequest]) (*connect.Response[v1.Empty], error) {
	msg, err := requireMsg(req, "question")
	if err != nil {
		return nil, err
	}
	if err := s.uc.RemoveQuestion(ctx, msg.CourseId, msg.QuestionId); err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.Empty{}), nil
}

func (s *CourseServiceServer) ReorderQuestions(ctx context.Context, req *connect.Request[v1.ReorderQuestionsRequest]) (*connect.Response[v1.ListCourseQuestionsResponse], error) {
	msg, err := requireMsg(req, "reorder")
	if err != nil {
		return nil, err
	}
	items, err := s.uc.ReorderQuestions(ctx, msg.CourseId, msg.QuestionIds)
	if err != nil {
		return nil, mapping.ToConnectError(err)
	}
	return connect.NewResponse(&v1.ListCourseQuestionsResponse{Questions: mapping.ToPbQuestions(items)}), nil
}
