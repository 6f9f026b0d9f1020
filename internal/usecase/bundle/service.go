package bundle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
	"github.com/eslsoft/keymantra/internal/usecase"
)

const exportPageSize = 200

var errEmptyBundle = errors.New("bundle: no courses to import")

// ProgressReporter receives per-course progress during import and export.
type ProgressReporter interface {
	StartCourse(name string, total int)
	Increment(name string, delta int)
	FinishCourse(name string)
}

type noopProgress struct{}

func (noopProgress) StartCourse(string, int) {}
func (noopProgress) Increment(string, int)   {}
func (noopProgress) FinishCourse(string)     {}

// Stats summarises an import.
type Stats struct {
	Courses   int
	Questions int
}

type Service struct {
	courses  usecase.CourseUsecase
	reporter ProgressReporter
}

type Option func(*Service)

// WithProgressReporter registers a reporter for progress callbacks.
func WithProgressReporter(reporter ProgressReporter) Option {
	return func(s *Service) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

func NewService(courses usecase.CourseUsecase, opts ...Option) *Service {
	s := &Service{courses: courses, reporter: noopProgress{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import creates a new course for every course in doc, keeping question order.
// Questions without a title are rejected before anything is written.
func (s *Service) Import(ctx context.Context, doc *Document) (Stats, error) {
	var stats Stats
	if doc == nil || len(doc.Courses) == 0 {
		return stats, errEmptyBundle
	}
	for i, c := range doc.Courses {
		if strings.TrimSpace(c.Name) == "" {
			return stats, fmt.Errorf("bundle: course #%d: %w", i+1, entity.ErrInvalidCourseName)
		}
		for j, q := range c.Questions {
			if strings.TrimSpace(q.Title) == "" {
				return stats, fmt.Errorf("bundle: course %q question #%d: %w", c.Name, j+1, entity.ErrInvalidQuestionTitle)
			}
		}
	}

	for _, c := range doc.Courses {
		course := &entity.Course{Name: c.Name}
		if c.Description != "" {
			desc := c.Description
			course.Description = &desc
		}
		created, err := s.courses.CreateCourse(ctx, course)
		if err != nil {
			return stats, fmt.Errorf("bundle: create course %q: %w", c.Name, err)
		}
		stats.Courses++

		s.reporter.StartCourse(c.Name, len(c.Questions))
		for _, q := range c.Questions {
			cq := &entity.CourseQuestion{CourseID: created.ID, Title: q.Title}
			if q.Answer != "" {
				answer := q.Answer
				cq.AnswerContent = &answer
			}
			if _, err := s.courses.AddQuestion(ctx, cq); err != nil {
				return stats, fmt.Errorf("bundle: add question %q to %q: %w", q.Title, c.Name, err)
			}
			stats.Questions++
			s.reporter.Increment(c.Name, 1)
		}
		s.reporter.FinishCourse(c.Name)
	}
	return stats, nil
}

// Export builds a document from the given courses, or from every course when
// courseIDs is empty.
func (s *Service) Export(ctx context.Context, courseIDs []int64) (*Document, error) {
	if len(courseIDs) == 0 {
		ids, err := s.allCourseIDs(ctx)
		if err != nil {
			return nil, err
		}
		courseIDs = ids
	}

	doc := &Document{Courses: make([]Course, 0, len(courseIDs))}
	for _, id := range courseIDs {
		detail, err := s.courses.GetCourse(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bundle: load course %d: %w", id, err)
		}
		c := Course{Name: detail.Course.Name, Questions: make([]Question, 0, len(detail.Questions))}
		if detail.Course.Description != nil {
			c.Description = *detail.Course.Description
		}
		s.reporter.StartCourse(c.Name, len(detail.Questions))
		for _, q := range detail.Questions {
			item := Question{Title: q.Title}
			if q.AnswerContent != nil {
				item.Answer = *q.AnswerContent
			}
			c.Questions = append(c.Questions, item)
			s.reporter.Increment(c.Name, 1)
		}
		s.reporter.FinishCourse(c.Name)
		doc.Courses = append(doc.Courses, c)
	}
	return doc, nil
}

func (s *Service) allCourseIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for page := int32(1); ; page++ {
		courses, total, err := s.courses.ListCourses(ctx, &repository.ListCourseQuery{
			Pagination:  repository.Pagination{PageNo: page, PageSize: exportPageSize},
			FilterOrder: repository.FilterOrder{OrderBy: "id asc"},
		})
		if err != nil {
			return nil, fmt.Errorf("bundle: list courses: %w", err)
		}
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		if len(courses) == 0 || int64(len(ids)) >= total {
			return ids, nil
		}
	}
}
