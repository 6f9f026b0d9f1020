package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
	"github.com/eslsoft/keymantra/pkg/filterexpr"
)

const courseColumns = `c.id, c.name, c.description, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM course_questions cq WHERE cq.course_id = c.id) AS question_count`

type courseRow struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	QuestionCount int64          `db:"question_count"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// listCoursesParams receives the bound filter literals.
type listCoursesParams struct {
	Keyword       *string
	Name          *string
	NamePrefix    *string
	Names         []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type courseRepository struct{ db *sqlx.DB }

func NewCourseRepository(db *sqlx.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(
		`INSERT INTO courses (name, description, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`),
		course.Name, nullString(course.Description), course.CreatedAt.UTC(), course.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return nil, translateError(err, "create course", nil, nil)
	}
	return r.GetByID(ctx, id)
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE courses SET name = ?, description = ?, updated_at = ? WHERE id = ?`),
		course.Name, nullString(course.Description), course.UpdatedAt.UTC(), course.ID,
	)
	if err != nil {
		return nil, translateError(err, "update course", nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrCourseNotFound
	}
	return r.GetByID(ctx, course.ID)
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*entity.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row courseRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+courseColumns+` FROM courses c WHERE c.id = ?`), id)
	if err != nil {
		return nil, translateError(err, "get course", entity.ErrCourseNotFound, nil)
	}
	return mapCourseRow(row), nil
}

func (r *courseRepository) List(ctx context.Context, query *repository.ListCourseQuery) ([]entity.Course, int64, error) {
	var p listCoursesParams
	orderBy, err := filterexpr.Bind(query, &p, listCoursesSchema)
	if err != nil {
		return nil, 0, err
	}

	where, args := courseWhere(p)
	stmt := `SELECT ` + courseColumns + ` FROM courses c` + where + ` ORDER BY ` + orderBy
	listArgs := args
	if query.PageSize > 0 {
		stmt += ` LIMIT ? OFFSET ?`
		listArgs = append(append([]any(nil), args...), query.PageSize, query.Offset())
	}

	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(stmt), listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM courses c`+where), args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	courses := make([]entity.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, *mapCourseRow(row))
	}
	return courses, total, nil
}

// Delete removes the course and any question no other course references.
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var questionIDs []int64
		if err := tx.SelectContext(ctx, &questionIDs, tx.Rebind(
			`SELECT question_id FROM course_questions WHERE course_id = ?`), id); err != nil {
			return fmt.Errorf("list course questions: %w", err)
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM courses WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return entity.ErrCourseNotFound
		}
		for _, qid := range questionIDs {
			if err := deleteOrphanQuestion(ctx, tx, qid); err != nil {
				return err
			}
		}
		return nil
	})
}

func courseWhere(p listCoursesParams) (string, []any) {
	var conds []string
	var args []any
	if p.Keyword != nil && strings.TrimSpace(*p.Keyword) != "" {
		pattern := containsPattern(*p.Keyword)
		conds = append(conds, `(LOWER(c.name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(c.description, '')) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if p.Name != nil {
		conds = append(conds, `c.name = ?`)
		args = append(args, *p.Name)
	}
	if p.NamePrefix != nil {
		conds = append(conds, `c.name LIKE ? ESCAPE '\'`)
		args = append(args, prefixPattern(*p.NamePrefix))
	}
	if len(p.Names) > 0 {
		conds = append(conds, `c.name IN (?`+strings.Repeat(`, ?`, len(p.Names)-1)+`)`)
		for _, name := range p.Names {
			args = append(args, name)
		}
	}
	if p.CreatedAfter != nil {
		conds = append(conds, `c.created_at >= ?`)
		args = append(args, p.CreatedAfter.UTC())
	}
	if p.CreatedBefore != nil {
		conds = append(conds, `c.created_at <= ?`)
		args = append(args, p.CreatedBefore.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func mapCourseRow(row courseRow) *entity.Course {
	return &entity.Course{
		ID:            row.ID,
		Name:          row.Name,
		Description:   stringPtr(row.Description),
		QuestionCount: row.QuestionCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
