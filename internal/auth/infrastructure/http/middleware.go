package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopworks/commerce-backend/pkg/token"
)

type ctxKey int

const payloadKey ctxKey = iota

// Authenticator gates protected routes. A missing or malformed Authorization
// header is rejected with 401 before any token work; a token that fails
// verification is rejected with 403. On success the verified payload is
// attached to the request context and nothing else happens.
func Authenticator(maker token.Maker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authorization header is missing")
				return
			}

			fields := strings.Fields(header)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "authorization header format must be Bearer <token>")
				return
			}

			payload, err := maker.VerifyToken(fields[1])
			if err != nil {
				writeError(w, http.StatusForbidden, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), payloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthPayload returns the token payload attached by Authenticator, or nil if
// the request did not pass through it.
func AuthPayload(ctx context.Context) *token.Payload {
	payload, _ := ctx.Value(payloadKey).(*token.Payload)
	return payload
}
