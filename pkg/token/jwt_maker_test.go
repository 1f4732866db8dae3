package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMakerRoundTrip(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	userID := uuid.NewString()
	ttl := time.Minute

	issuedAt := time.Now().UTC()
	signed, payload, err := maker.CreateToken(userID, ttl)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotNil(t, payload)

	verified, err := maker.VerifyToken(signed)
	require.NoError(t, err)

	assert.Equal(t, payload.ID, verified.ID)
	assert.Equal(t, userID, verified.UserID)
	assert.WithinDuration(t, issuedAt, verified.IssuedAt, time.Second)
	assert.WithinDuration(t, issuedAt.Add(ttl), verified.ExpiredAt, time.Second)
}

func TestJWTMakerExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	signed, _, err := maker.CreateToken(uuid.NewString(), -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(signed)
	require.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, payload)
}

func TestJWTMakerTamperedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	signed, _, err := maker.CreateToken(uuid.NewString(), time.Minute)
	require.NoError(t, err)

	// Flip one character of the signature segment.
	flipped := byte('A')
	if signed[len(signed)-1] == flipped {
		flipped = 'B'
	}
	tampered := signed[:len(signed)-1] + string(flipped)
	require.NotEqual(t, signed, tampered)

	payload, err := maker.VerifyToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, payload)
}

func TestJWTMakerWrongSecret(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	other, err := NewJWTMaker(strings.Repeat("x", 32))
	require.NoError(t, err)

	signed, _, err := other.CreateToken(uuid.NewString(), time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMakerMalformedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := maker.VerifyToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestNewJWTMakerShortSecret(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}
