package entity

import (
	"strings"
	"time"
)

// Course is a named, ordered collection of questions.
type Course struct {
	ID            int64
	Name          string
	Description   *string
	QuestionCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Normalize trims user input and stamps timestamps before persistence.
func (c *Course) Normalize(now time.Time) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Description != nil {
		desc := strings.TrimSpace(*c.Description)
		if desc == "" {
			c.Description = nil
		} else {
			c.Description = &desc
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Validate checks the fields required to store a course.
func (c *Course) Validate() error {
	if c.Name == "" {
		return ErrInvalidCourseName
	}
	return nil
}

// CourseDetail is a course together with its ordered questions.
type CourseDetail struct {
	Course    *Course
	Questions []CourseQuestion
}
