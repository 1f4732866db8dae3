package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/commerce-backend/internal/auth/domain"
	"github.com/shopworks/commerce-backend/pkg/logging"
	"github.com/shopworks/commerce-backend/pkg/password"
	"github.com/shopworks/commerce-backend/pkg/token"
)

type memUserStore struct {
	byEmail map[string]domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]domain.User)}
}

func (s *memUserStore) Insert(_ context.Context, u domain.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	s.byEmail[u.Email] = u
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *memUserStore) {
	t.Helper()
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	users := newMemUserStore()
	return NewService(logging.New("auth-test"), users, maker, time.Hour), users
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := newTestService(t)

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	stored := users.byEmail["alice@example.com"]
	assert.True(t, password.Verify("hunter22", stored.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Alice", "alice@example.com", "different")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	signed, payload, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, u.ID, payload.UserID)

	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	verified, err := maker.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID, verified.UserID)
}

func TestLoginFailuresAreOpaque(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	wrongEmail := err
	require.ErrorIs(t, wrongEmail, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	wrongPassword := err
	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)

	// Same error either way; nothing leaks about which check failed.
	assert.Equal(t, wrongEmail.Error(), wrongPassword.Error())
}
