package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

func TestRateLimiter_AllowWithinBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 3)
	defer rl.Stop()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(userID), "request %d within burst should be allowed", i)
	}
	assert.False(t, rl.Allow(userID), "request beyond burst should be denied")
}

func TestRateLimiter_IndependentPerUser(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	first := uuid.New()
	second := uuid.New()

	assert.True(t, rl.Allow(first))
	assert.False(t, rl.Allow(first))
	assert.True(t, rl.Allow(second), "another user has their own bucket")
}

func TestRateLimitMiddleware_TooManyRequests(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetActor(c, actor)
		require.NoError(t, handler(c))
		return rec
	}

	rec := call()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))

	rec = call()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_SkipsUnauthenticated(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_GetStateUnknownUser(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	remaining, reset := rl.GetState(uuid.New())
	assert.Equal(t, 5, remaining)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, 2*time.Second)
}
