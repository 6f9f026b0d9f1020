package entity

import (
	"strings"
	"time"
)

// User is a learner known from the identity provider. ID is the provider's
// subject identifier.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is what the auth layer extracts from a verified token.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	Username string
}

// DisplayName picks the best available name for an identity, falling back to
// the local part of the email and finally to "User".
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	if username := strings.TrimSpace(i.Username); username != "" {
		return username
	}
	if local, _, ok := strings.Cut(i.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}

// Validate validates the user entity.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrInvalidUserID
	}
	return nil
}
