package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
)

const courseQuestionSelect = `SELECT cq.course_id, cq.question_id, cq.sort_order, q.title,
	a.content AS answer_content, q.created_at, q.updated_at
FROM course_questions cq
JOIN questions q ON q.id = cq.question_id
LEFT JOIN answers a ON a.question_id = q.id`

type courseQuestionRow struct {
	CourseID      int64          `db:"course_id"`
	QuestionID    int64          `db:"question_id"`
	SortOrder     int32          `db:"sort_order"`
	Title         string         `db:"title"`
	AnswerContent sql.NullString `db:"answer_content"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type questionRepository struct{ db *sqlx.DB }

func NewQuestionRepository(db *sqlx.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) ListByCourse(ctx context.Context, courseID int64) ([]entity.CourseQuestion, error) {
	var rows []courseQuestionRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(courseQuestionSelect+
		` WHERE cq.course_id = ? ORDER BY cq.sort_order ASC, cq.question_id ASC`), courseID)
	if err != nil {
		return nil, fmt.Errorf("list course questions: %w", err)
	}
	out := make([]entity.CourseQuestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCourseQuestionRow(row))
	}
	return out, nil
}

func (r *questionRepository) AddToCourse(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var questionID int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureCourse(ctx, tx, q.CourseID); err != nil {
			return err
		}
		if err := tx.QueryRowxContext(ctx, tx.Rebind(
			`INSERT INTO questions (title, created_at, updated_at) VALUES (?, ?, ?) RETURNING id`),
			q.Title, q.CreatedAt.UTC(), q.UpdatedAt.UTC(),
		).Scan(&questionID); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		if err := upsertAnswer(ctx, tx, questionID, q.AnswerContent, q.UpdatedAt); err != nil {
			return err
		}

		sortOrder := q.SortOrder
		if sortOrder <= 0 {
			if err := tx.GetContext(ctx, &sortOrder, tx.Rebind(
				`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM course_questions WHERE course_id = ?`), q.CourseID); err != nil {
				return fmt.Errorf("next sort order: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO course_questions (course_id, question_id, sort_order, created_at) VALUES (?, ?, ?, ?)`),
			q.CourseID, questionID, sortOrder, q.CreatedAt.UTC(),
		); err != nil {
			return translateError(err, "attach question", nil, entity.ErrDuplicateCourseQuestion)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, q.CourseID, questionID)
}

// Update rewrites the title and answer. A positive SortOrder also moves the question.
func (r *questionRepository) Update(ctx context.Context, q *entity.CourseQuestion) (*entity.CourseQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureMembership(ctx, tx, q.CourseID, q.QuestionID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`UPDATE questions SET title = ?, updated_at = ? WHERE id = ?`),
			q.Title, q.UpdatedAt.UTC(), q.QuestionID,
		); err != nil {
			return fmt.Errorf("update question: %w", err)
		}
		if err := upsertAnswer(ctx, tx, q.QuestionID, q.AnswerContent, q.UpdatedAt); err != nil {
			return err
		}
		if q.SortOrder > 0 {
			if _, err := tx.ExecContext(ctx, tx.Rebind(
				`UPDATE course_questions SET sort_order = ? WHERE course_id = ? AND question_id = ?`),
				q.SortOrder, q.CourseID, q.QuestionID,
			); err != nil {
				return fmt.Errorf("move question: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, q.CourseID, q.QuestionID)
}

func (r *questionRepository) RemoveFromCourse(ctx context.Context, courseID, questionID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(
			`DELETE FROM course_questions WHERE course_id = ? AND question_id = ?`), courseID, questionID)
		if err != nil {
			return fmt.Errorf("detach question: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return entity.ErrQuestionNotFound
		}
		return deleteOrphanQuestion(ctx, tx, questionID)
	})
}

func (r *questionRepository) Reorder(ctx context.Context, courseID int64, questionIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureCourse(ctx, tx, courseID); err != nil {
			return err
		}
		var current []int64
		if err := tx.SelectContext(ctx, &current, tx.Rebind(
			`SELECT question_id FROM course_questions WHERE course_id = ?`), courseID); err != nil {
			return fmt.Errorf("list course questions: %w", err)
		}
		if !samePermutation(current, questionIDs) {
			return entity.ErrInvalidReorder
		}
		for i, qid := range questionIDs {
			if _, err := tx.ExecContext(ctx, tx.Rebind(
				`UPDATE course_questions SET sort_order = ? WHERE course_id = ? AND question_id = ?`),
				i+1, courseID, qid,
			); err != nil {
				return fmt.Errorf("reorder question %d: %w", qid, err)
			}
		}
		return nil
	})
}

func (r *questionRepository) get(ctx context.Context, courseID, questionID int64) (*entity.CourseQuestion, error) {
	var row courseQuestionRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(courseQuestionSelect+
		` WHERE cq.course_id = ? AND cq.question_id = ?`), courseID, questionID)
	if err != nil {
		return nil, translateError(err, "get course question", entity.ErrQuestionNotFound, nil)
	}
	q := mapCourseQuestionRow(row)
	return &q, nil
}

func ensureCourse(ctx context.Context, tx *sqlx.Tx, courseID int64) error {
	var one int
	err := tx.GetContext(ctx, &one, tx.Rebind(`SELECT 1 FROM courses WHERE id = ?`), courseID)
	return translateError(err, "check course", entity.ErrCourseNotFound, nil)
}

func ensureMembership(ctx context.Context, tx *sqlx.Tx, courseID, questionID int64) error {
	var one int
	err := tx.GetContext(ctx, &one, tx.Rebind(
		`SELECT 1 FROM course_questions WHERE course_id = ? AND question_id = ?`), courseID, questionID)
	return translateError(err, "check course question", entity.ErrQuestionNotFound, nil)
}

// upsertAnswer stores content as the answer of questionID, or removes the
// answer when content is nil.
func upsertAnswer(ctx context.Context, tx *sqlx.Tx, questionID int64, content *string, now time.Time) error {
	if content == nil {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM answers WHERE question_id = ?`), questionID); err != nil {
			return fmt.Errorf("clear answer: %w", err)
		}
		return nil
	}
	_, err := tx.ExecContext(ctx, tx.Rebind(
		`INSERT INTO answers (question_id, content, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (question_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`),
		questionID, *content, now.UTC(), now.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func deleteOrphanQuestion(ctx context.Context, tx *sqlx.Tx, questionID int64) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(
		`DELETE FROM questions WHERE id = ? AND NOT EXISTS (SELECT 1 FROM course_questions WHERE question_id = ?)`),
		questionID, questionID)
	if err != nil {
		return fmt.Errorf("delete orphan question: %w", err)
	}
	return nil
}

func samePermutation(current, proposed []int64) bool {
	if len(current) != len(proposed) {
		return false
	}
	remaining := make(map[int64]int, len(current))
	for _, id := range current {
		remaining[id]++
	}
	for _, id := range proposed {
		if remaining[id] == 0 {
			return false
		}
		remaining[id]--
	}
	return true
}

func mapCourseQuestionRow(row courseQuestionRow) entity.CourseQuestion {
	return entity.CourseQuestion{
		CourseID:      row.CourseID,
		QuestionID:    row.QuestionID,
		SortOrder:     row.SortOrder,
		Title:         row.Title,
		AnswerContent: stringPtr(row.AnswerContent),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
