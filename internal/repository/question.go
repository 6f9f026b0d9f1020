package repository

import (
	"context"

	"github.com/eslsoft/keymantra/internal/entity"
)

// QuestionRepository manages questions, their answers and their placement in courses.
type QuestionRepository interface {
	// ListByCourse returns the course questions ordered by sort order, then question id.
	ListByCourse(ctx context.Context, courseID int64) ([]entity.CourseQuestion, error)
	// AddToCourse creates a question with its optional answer and appends it to
	// the course. A zero SortOrder places it after the current last question.
	AddToCourse(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error)
	Update(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error)
	// RemoveFromCourse detaches the question and deletes it once no course uses it.
	RemoveFromCourse(ctx context.Context, courseID, questionID int64) error
	// Reorder assigns sort orders 1..n following questionIDs.
	Reorder(ctx context.Context, courseID int64, questionIDs []int64) error
}
