// Package idempotency guards mutating endpoints against client retries. A
// request carrying an Idempotency-Key header is admitted once per TTL; a
// replay inside the window is rejected before it reaches the handler.
package idempotency

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const Header = "Idempotency-Key"

// Checker reports whether a key was already admitted.
type Checker interface {
	Seen(ctx context.Context, key string) (bool, error)
}

// Store tracks admitted keys in Redis via SetNX.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, "idem:http:"+key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Middleware rejects replayed Idempotency-Key requests with 409. Requests
// without the header pass through untouched, and the guard fails open when
// the checker errors.
func Middleware(log *slog.Logger, checker Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(Header)
			if checker == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			seen, err := checker.Seen(r.Context(), key)
			if err != nil {
				log.Warn("idempotency check failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				http.Error(w, "duplicate request", http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
