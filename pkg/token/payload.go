package token

import (
	"time"

	"github.com/google/uuid"
)

// Payload is the verified content of a token: a unique token id, the subject
// user and the validity window.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func NewPayload(userID string, ttl time.Duration) (*Payload, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Payload{
		ID:        id,
		UserID:    userID,
		IssuedAt:  now,
		ExpiredAt: now.Add(ttl),
	}, nil
}

// Valid implements jwt.Claims. A token is rejected the instant the clock
// reaches ExpiredAt; no leeway window is granted.
func (p *Payload) Valid() error {
	if !time.Now().Before(p.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}
