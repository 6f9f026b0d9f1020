package repository

import (
	"context"

	"github.com/eslsoft/keymantra/internal/entity"
)

// UserRepository persists users synced from the identity provider.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}
