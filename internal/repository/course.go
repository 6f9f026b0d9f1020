package repository

import (
	"context"

	"github.com/eslsoft/keymantra/internal/entity"
)

// ListCourseQuery holds parameters for listing courses.
type ListCourseQuery struct {
	Pagination
	FilterOrder
}

// CourseRepository abstracts persistence for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) (*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) (*entity.Course, error)
	GetByID(ctx context.Context, id int64) (*entity.Course, error)
	List(ctx context.Context, query *ListCourseQuery) ([]entity.Course, int64, error)
	Delete(ctx context.Context, id int64) error
}
