package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRateLimiterAllow(t *testing.T) {
	rl := NewUserRateLimiter(1, 2, time.Hour)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "burst exhausted")

	assert.True(t, rl.Allow("b"), "identities have separate buckets")
}

func TestUserRateLimiterCleanup(t *testing.T) {
	rl := NewUserRateLimiter(1, 1, time.Millisecond)
	rl.Allow("a")
	rl.Allow("b")
	require.Equal(t, 2, rl.size())

	time.Sleep(5 * time.Millisecond)
	rl.Cleanup()

	assert.Equal(t, 0, rl.size())
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewUserRateLimiter(0.001, 1, time.Hour)
	handler := RateLimit(rl, GetUserIDFromContext)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	newRequest := func(user *domain.User) *http.Request {
		req := httptest.NewRequest("GET", "/v1/hoots", nil)
		if user != nil {
			req = req.WithContext(context.WithValue(req.Context(), UserClaimsKey, user))
		}
		return req
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(&domain.User{Id: 1}))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(&domain.User{Id: 1}))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(&domain.User{Id: 2}))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
