package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// minSecretSize guards against secrets too short to resist brute force.
const minSecretSize = 32

// JWTMaker signs payloads as HS256 JWTs with a process-wide secret. The
// secret is injected once at construction and never logged or exposed.
type JWTMaker struct {
	secret string
}

func NewJWTMaker(secret string) (*JWTMaker, error) {
	if len(secret) < minSecretSize {
		return nil, fmt.Errorf("token secret must be at least %d characters", minSecretSize)
	}
	return &JWTMaker{secret: secret}, nil
}

func (m *JWTMaker) CreateToken(userID string, ttl time.Duration) (string, *Payload, error) {
	payload, err := NewPayload(userID, ttl)
	if err != nil {
		return "", nil, err
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := jwtToken.SignedString([]byte(m.secret))
	if err != nil {
		return "", nil, err
	}
	return signed, payload, nil
}

func (m *JWTMaker) VerifyToken(token string) (*Payload, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		// Reject alg substitution, including "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.secret), nil
	}

	payload := &Payload{}
	_, err := jwt.ParseWithClaims(token, payload, keyFunc)
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && errors.Is(verr.Inner, ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return payload, nil
}
