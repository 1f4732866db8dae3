package idempotency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopworks/commerce-backend/pkg/logging"
)

type memChecker struct {
	seen map[string]bool
	err  error
}

func (c *memChecker) Seen(_ context.Context, key string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	if c.seen[key] {
		return true, nil
	}
	c.seen[key] = true
	return false, nil
}

func guarded(checker Checker) (http.Handler, *int) {
	var hits int
	h := Middleware(logging.New("idem-test"), checker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
	}))
	return h, &hits
}

func do(h http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	if key != "" {
		req.Header.Set(Header, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareRejectsReplay(t *testing.T) {
	h, hits := guarded(&memChecker{seen: map[string]bool{}})

	assert.Equal(t, http.StatusCreated, do(h, "key-1").Code)
	assert.Equal(t, http.StatusConflict, do(h, "key-1").Code)
	assert.Equal(t, http.StatusCreated, do(h, "key-2").Code)
	assert.Equal(t, 2, *hits)
}

func TestMiddlewarePassThroughWithoutKey(t *testing.T) {
	h, hits := guarded(&memChecker{seen: map[string]bool{}})

	assert.Equal(t, http.StatusCreated, do(h, "").Code)
	assert.Equal(t, http.StatusCreated, do(h, "").Code)
	assert.Equal(t, 2, *hits)
}

func TestMiddlewareFailsOpen(t *testing.T) {
	h, hits := guarded(&memChecker{err: errors.New("redis down")})

	assert.Equal(t, http.StatusCreated, do(h, "key-1").Code)
	assert.Equal(t, http.StatusCreated, do(h, "key-1").Code)
	assert.Equal(t, 2, *hits)
}

func TestMiddlewareNilChecker(t *testing.T) {
	h, hits := guarded(nil)

	assert.Equal(t, http.StatusCreated, do(h, "key-1").Code)
	assert.Equal(t, http.StatusCreated, do(h, "key-1").Code)
	assert.Equal(t, 2, *hits)
}
