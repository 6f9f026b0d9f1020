package entity

import (
	"strings"
	"time"
)

// Question is a prompt learners answer.
type Question struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Answer is the expected response to a question.
type Answer struct {
	ID      int64
	Content string
}

// CourseQuestion is a question as it appears inside a course: its position
// plus the attached answer, if any.
type CourseQuestion struct {
	CourseID   int64
	QuestionID int64
	SortOrder  int32
	Title      string
	// AnswerContent is nil when no answer is attached.
	AnswerContent *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Normalize trims the title and answer and stamps timestamps.
func (q *CourseQuestion) Normalize(now time.Time) {
	q.Title = strings.TrimSpace(q.Title)
	if q.AnswerContent != nil {
		content := strings.TrimSpace(*q.AnswerContent)
		if content == "" {
			q.AnswerContent = nil
		} else {
			q.AnswerContent = &content
		}
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
}

// Validate checks the fields required to store a question.
func (q *CourseQuestion) Validate() error {
	if q.Title == "" {
		return ErrInvalidQuestionTitle
	}
	return nil
}

// HasAnswer reports whether a non-blank answer is attached.
func (q *CourseQuestion) HasAnswer() bool {
	return q.AnswerContent != nil && strings.TrimSpace(*q.AnswerContent) != ""
}
