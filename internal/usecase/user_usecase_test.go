package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/keymantra/internal/entity"
)

func TestUserSync(t *testing.T) {
	store := newMemoryStore()
	uc := NewUserUsecase(memUsers{store}).(*userUsecase)
	uc.clock = fixedClock(testNow)
	ctx := context.Background()

	user, created, err := uc.Sync(ctx, entity.Identity{Subject: "sub-1", Email: "jo@example.com"})
	if err != nil || !created {
		t.Fatalf("first sync: created=%v err=%v", created, err)
	}
	if user.Name != "jo" {
		t.Fatalf("display name should fall back to email local part, got %q", user.Name)
	}

	user, created, err = uc.Sync(ctx, entity.Identity{Subject: "sub-1", Email: "jo@example.com", Name: "Jo"})
	if err != nil || created || user.Name != "Jo" {
		t.Fatalf("second sync: %+v created=%v err=%v", user, created, err)
	}

	if _, _, err := uc.Sync(ctx, entity.Identity{Subject: "  "}); !errors.Is(err, entity.ErrInvalidUserID) {
		t.Fatalf("blank subject: %v", err)
	}
}

func TestIdentityDisplayName(t *testing.T) {
	cases := []struct {
		id   entity.Identity
		want string
	}{
		{entity.Identity{Name: "Ann", Username: "ann1"}, "Ann"},
		{entity.Identity{Username: "ann1", Email: "a@x.io"}, "ann1"},
		{entity.Identity{Email: "a@x.io"}, "a"},
		{entity.Identity{}, "User"},
	}
	for _, tc := range cases {
		if got := tc.id.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
