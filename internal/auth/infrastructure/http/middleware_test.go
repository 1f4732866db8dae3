package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/commerce-backend/pkg/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func protectedRouter(t *testing.T, maker token.Maker) (http.Handler, *int) {
	t.Helper()
	var hits int
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(maker))
		r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
			hits++
			payload := AuthPayload(r.Context())
			require.NotNil(t, payload)
			w.WriteHeader(http.StatusOK)
		})
	})
	return r, &hits
}

func TestAuthenticatorAllowsValidToken(t *testing.T) {
	maker, err := token.NewJWTMaker(testSecret)
	require.NoError(t, err)
	router, hits := protectedRouter(t, maker)

	signed, _, err := maker.CreateToken(uuid.NewString(), time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *hits)
}

func TestAuthenticatorDenies(t *testing.T) {
	maker, err := token.NewJWTMaker(testSecret)
	require.NoError(t, err)

	otherMaker, err := token.NewJWTMaker(strings.Repeat("z", 32))
	require.NoError(t, err)
	foreign, _, err := otherMaker.CreateToken(uuid.NewString(), time.Minute)
	require.NoError(t, err)

	expired, _, err := maker.CreateToken(uuid.NewString(), -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"missing token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, hits := protectedRouter(t, maker)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, 0, *hits, "protected handler must not run")
		})
	}
}

func TestAuthPayloadOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, AuthPayload(req.Context()))
}
