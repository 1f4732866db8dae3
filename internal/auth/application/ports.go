package application

import (
	"context"

	"github.com/shopworks/commerce-backend/internal/auth/domain"
)

// UserStore is the credential store the auth service depends on.
type UserStore interface {
	// Insert persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Insert(ctx context.Context, u domain.User) error
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}
