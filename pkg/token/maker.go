// Package token issues and verifies the signed, time-limited bearer tokens
// used to authenticate API requests. Tokens are stateless: verification needs
// only the token string, the server secret and the clock, so there is no
// revocation before expiry short of rotating the secret.
package token

import (
	"errors"
	"time"
)

var (
	// ErrInvalidToken covers bad signatures and malformed token strings.
	ErrInvalidToken = errors.New("token is invalid")
	// ErrExpiredToken is returned once the current time reaches expired_at.
	ErrExpiredToken = errors.New("token has expired")
)

// Maker signs and verifies bearer tokens for a user id.
type Maker interface {
	CreateToken(userID string, ttl time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
