package domain

import (
	"errors"
	"time"
)

// User is an account holder. PasswordHash is a bcrypt digest; the raw
// password is never stored. Users are immutable after registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	// ErrEmailTaken means a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound means no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for any login failure. It is
	// deliberately opaque: callers cannot tell whether the email or the
	// password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
