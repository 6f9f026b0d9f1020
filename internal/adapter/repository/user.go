package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
)

type userRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type userRepository struct{ db *sqlx.DB }

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, translateError(err, "find user", entity.ErrUserNotFound, nil)
	}
	return &entity.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO users (id, email, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		user.ID, user.Email, user.Name, user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, translateError(err, "create user", nil, nil)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE users SET email = ?, name = ?, updated_at = ? WHERE id = ?`),
		user.Email, user.Name, user.UpdatedAt.UTC(), user.ID,
	)
	if err != nil {
		return nil, translateError(err, "update user", nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, entity.ErrUserNotFound
	}
	return r.FindByID(ctx, user.ID)
}
