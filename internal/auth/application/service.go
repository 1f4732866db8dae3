package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopworks/commerce-backend/internal/auth/domain"
	"github.com/shopworks/commerce-backend/pkg/password"
	"github.com/shopworks/commerce-backend/pkg/token"
)

// Service implements registration and login on top of a credential store and
// a token maker.
type Service struct {
	log      *slog.Logger
	users    UserStore
	maker    token.Maker
	tokenTTL time.Duration
}

func NewService(log *slog.Logger, users UserStore, maker token.Maker, tokenTTL time.Duration) *Service {
	return &Service{
		log:      log,
		users:    users,
		maker:    maker,
		tokenTTL: tokenTTL,
	}
}

// Register hashes the password and persists a new user with a fresh opaque id.
func (s *Service) Register(ctx context.Context, name, email, plain string) (domain.User, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and issues an access token. All credential
// failures collapse into domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plain string) (string, *token.Payload, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !password.Verify(plain, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, payload, err := s.maker.CreateToken(u.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("user logged in", "user_id", u.ID)
	return signed, payload, nil
}
