package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/repository"
)

// UserUsecase keeps the local user table in step with the identity provider.
type UserUsecase interface {
	// Sync creates the user on first sight and refreshes email and name
	// afterwards. created reports whether a new record was inserted.
	Sync(ctx context.Context, identity entity.Identity) (user *entity.User, created bool, err error)
}

type userUsecase struct {
	repo  repository.UserRepository
	clock func() time.Time
}

func NewUserUsecase(repo repository.UserRepository) UserUsecase {
	return &userUsecase{repo: repo, clock: time.Now}
}

func (u *userUsecase) Sync(ctx context.Context, identity entity.Identity) (*entity.User, bool, error) {
	subject := strings.TrimSpace(identity.Subject)
	if subject == "" {
		return nil, false, entity.ErrInvalidUserID
	}
	email := strings.TrimSpace(identity.Email)
	name := identity.DisplayName()
	now := u.clock()

	existing, err := u.repo.FindByID(ctx, subject)
	switch {
	case errors.Is(err, entity.ErrUserNotFound):
		user := &entity.User{ID: subject, Email: email, Name: name, CreatedAt: now, UpdatedAt: now}
		if err := user.Validate(); err != nil {
			return nil, false, err
		}
		created, err := u.repo.Create(ctx, user)
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	case err != nil:
		return nil, false, err
	}

	if existing.Email == email && existing.Name == name {
		return existing, false, nil
	}
	existing.Email = email
	existing.Name = name
	existing.UpdatedAt = now
	updated, err := u.repo.Update(ctx, existing)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}
