package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
)

// CourseUsecase manages courses and the questions inside them.
type CourseUsecase interface {
	CreateCourse(ctx context.Context, course *entity.Course) (*entity.Course, error)
	GetCourse(ctx context.Context, id int64) (*entity.CourseDetail, error)
	ListCourses(ctx context.Context, query *repository.ListCourseQuery) ([]entity.Course, int64, error)
	UpdateCourse(ctx context.Context, course *entity.Course) (*entity.Course, error)
	DeleteCourse(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context, courseID int64) ([]entity.CourseQuestion, error)
	AddQuestion(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error)
	UpdateQuestion(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error)
	RemoveQuestion(ctx context.Context, courseID, questionID int64) error
	ReorderQuestions(ctx context.Context, courseID int64, questionIDs []int64) ([]entity.CourseQuestion, error)
}

const (
	_defaultPageSize = int32(20)
	_maxPageSize     = int32(200)
)

type courseUsecase struct {
	courses   repository.CourseRepository
	questions repository.QuestionRepository
	clock     func() time.Time
}

func NewCourseUsecase(courses repository.CourseRepository, questions repository.QuestionRepository) CourseUsecase {
	return &courseUsecase{courses: courses, questions: questions, clock: time.Now}
}

func (u *courseUsecase) CreateCourse(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if course == nil {
		return nil, entity.ErrInvalidCourseName
	}
	in := *course
	in.ID = 0
	in.CreatedAt = time.Time{}
	in.Normalize(u.clock())
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return u.courses.Create(ctx, &in)
}

// GetCourse loads the course and its questions concurrently.
func (u *courseUsecase) GetCourse(ctx context.Context, id int64) (*entity.CourseDetail, error) {
	if id <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	var detail entity.CourseDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		course, err := u.courses.GetByID(gctx, id)
		detail.Course = course
		return err
	})
	g.Go(func() error {
		questions, err := u.questions.ListByCourse(gctx, id)
		detail.Questions = questions
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (u *courseUsecase) ListCourses(ctx context.Context, query *repository.ListCourseQuery) ([]entity.Course, int64, error) {
	if query == nil {
		query = &repository.ListCourseQuery{}
	}
	query.Normalize(_defaultPageSize, _maxPageSize)
	return u.courses.List(ctx, query)
}

func (u *courseUsecase) UpdateCourse(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if course == nil || course.ID <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	in := *course
	in.Normalize(u.clock())
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return u.courses.Update(ctx, &in)
}

func (u *courseUsecase) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrInvalidCourseID
	}
	return u.courses.Delete(ctx, id)
}

func (u *courseUsecase) ListQuestions(ctx context.Context, courseID int64) ([]entity.CourseQuestion, error) {
	if courseID <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	if _, err := u.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return u.questions.ListByCourse(ctx, courseID)
}

func (u *courseUsecase) AddQuestion(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	if q == nil {
		return nil, entity.ErrInvalidQuestionTitle
	}
	if q.CourseID <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	in := *q
	in.QuestionID = 0
	in.CreatedAt = time.Time{}
	in.Normalize(u.clock())
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return u.questions.AddToCourse(ctx, &in)
}

func (u *courseUsecase) UpdateQuestion(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	if q == nil || q.QuestionID <= 0 {
		return nil, entity.ErrInvalidQuestionID
	}
	if q.CourseID <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	in := *q
	in.Normalize(u.clock())
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return u.questions.Update(ctx, &in)
}

func (u *courseUsecase) RemoveQuestion(ctx context.Context, courseID, questionID int64) error {
	if courseID <= 0 {
		return entity.ErrInvalidCourseID
	}
	if questionID <= 0 {
		return entity.ErrInvalidQuestionID
	}
	return u.questions.RemoveFromCourse(ctx, courseID, questionID)
}

func (u *courseUsecase) ReorderQuestions(ctx context.Context, courseID int64, questionIDs []int64) ([]entity.CourseQuestion, error) {
	if courseID <= 0 {
		return nil, entity.ErrInvalidCourseID
	}
	if len(questionIDs) == 0 {
		return nil, errors.Join(entity.ErrInvalidReorder, errors.New("no question ids given"))
	}
	if err := u.questions.Reorder(ctx, courseID, questionIDs); err != nil {
		return nil, err
	}
	return u.questions.ListByCourse(ctx, courseID)
}
