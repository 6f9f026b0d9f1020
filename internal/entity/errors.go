package entity

import "errors"

// Domain errors shared by usecases and adapters.
var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrInvalidCourseID         = errors.New("invalid course ID")
	ErrInvalidCourseName       = errors.New("invalid course name")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrInvalidQuestionID       = errors.New("invalid question ID")
	ErrInvalidQuestionTitle    = errors.New("invalid question title")
	ErrDuplicateCourseQuestion = errors.New("question already belongs to course")
	ErrInvalidReorder          = errors.New("reorder must list every course question exactly once")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidUserID           = errors.New("invalid user ID")
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrSessionNotFound         = errors.New("practice session not found")
)
