package mapping

import (
	"github.com/samber/lo"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/internal/entity"
)

func ToPbCourse(in *entity.Course) *v1.Course {
	if in == nil {
		return nil
	}
	return &v1.Course{
		Id:            in.ID,
		Name:          in.Name,
		Description:   in.Description,
		QuestionCount: in.QuestionCount,
		CreateTime:    in.CreatedAt,
		UpdateTime:    in.UpdatedAt,
	}
}

func ToPbCourses(in []entity.Course) []*v1.Course {
	return lo.Map(in, func(c entity.Course, _ int) *v1.Course {
		return ToPbCourse(&c)
	})
}

func FromPbCreateCourse(in *v1.CreateCourseRequest) *entity.Course {
	return &entity.Course{Name: in.Name, Description: in.Description}
}

func FromPbUpdateCourse(in *v1.UpdateCourseRequest) *entity.Course {
	return &entity.Course{ID: in.Id, Name: in.Name, Description: in.Description}
}

func ToPbQuestion(in *entity.CourseQuestion) *v1.Question {
	if in == nil {
		return nil
	}
	return &v1.Question{
		Id:         in.QuestionID,
		CourseId:   in.CourseID,
		SortOrder:  in.SortOrder,
		Title:      in.Title,
		Answer:     in.AnswerContent,
		CreateTime: in.CreatedAt,
		UpdateTime: in.UpdatedAt,
	}
}

func ToPbQuestions(in []entity.CourseQuestion) []*v1.Question {
	out := lo.Map(in, func(q entity.CourseQuestion, _ int) *v1.Question {
		return ToPbQuestion(&q)
	})
	if out == nil {
		out = []*v1.Question{}
	}
	return out
}

func FromPbAddQuestion(in *v1.AddQuestionRequest) *entity.CourseQuestion {
	return &entity.CourseQuestion{
		CourseID:      in.CourseId,
		SortOrder:     in.SortOrder,
		Title:         in.Title,
		AnswerContent: in.Answer,
	}
}

func FromPbUpdateQuestion(in *v1.UpdateQuestionRequest) *entity.CourseQuestion {
	return &entity.CourseQuestion{
		CourseID:      in.CourseId,
		QuestionID:    in.QuestionId,
		SortOrder:     in.SortOrder,
		Title:         in.Title,
		AnswerContent: in.Answer,
	}
}

func ToPbCourseDetail(in *entity.CourseDetail) *v1.GetCourseResponse {
	if in == nil {
		return &v1.GetCourseResponse{Questions: []*v1.Question{}}
	}
	return &v1.GetCourseResponse{
		Course:    ToPbCourse(in.Course),
		Questions: ToPbQuestions(in.Questions),
	}
}
