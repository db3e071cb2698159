package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is the default rate limit per minute
	DefaultRateLimit = 100
	// DefaultBurstSize is the default burst size
	DefaultBurstSize = 10
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter manages per-user rate limiting
type RateLimiter struct {
	limiters  map[uuid.UUID]*limiterEntry
	mu        sync.RWMutex
	limit     int
	rateLimit float64
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new RateLimiter with default settings
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter with custom configuration
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:  make(map[uuid.UUID]*limiterEntry),
		limit:     requestsPerMinute,
		rateLimit: float64(requestsPerMinute) / 60.0, // Convert to per-second
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Allow checks if a request from the given user is allowed
func (r *RateLimiter) Allow(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[userID]
	if !exists {
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize),
			lastSeen: time.Now(),
		}
		r.limiters[userID] = entry
	} else {
		entry.lastSeen = time.Now()
	}

	return entry.limiter.Allow()
}

// GetState returns the current state for rate limit headers
func (r *RateLimiter) GetState(userID uuid.UUID) (remaining int, resetTime time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.limiters[userID]
	if !exists {
		return r.burstSize, time.Now().Add(time.Minute)
	}

	// Estimate remaining tokens (approximation)
	tokens := int(entry.limiter.Tokens())
	if tokens < 0 {
		tokens = 0
	}

	// Reset time is approximately when tokens would be fully replenished
	resetDuration := time.Duration(float64(r.burstSize-tokens)/r.rateLimit) * time.Second
	return tokens, time.Now().Add(resetDuration)
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for userID, entry := range r.limiters {
				if now.Sub(entry.lastSeen) > LimiterTTL {
					delete(r.limiters, userID)
					log.Debug().Str("user_id", userID.String()).Msg("Cleaned up stale rate limiter")
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

// RateLimitMiddleware returns an Echo middleware that applies per-user rate
// limiting. It must run after Authenticate so the actor is resolved.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := GetActor(c)
			if actor.UserID == uuid.Nil {
				// No authenticated user in context, skip rate limiting
				return next(c)
			}

			if !rl.Allow(actor.UserID) {
				_, resetTime := rl.GetState(actor.UserID)
				retryAfter := int(time.Until(resetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				log.Warn().
					Str("user_id", actor.UserID.String()).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return errorResponse(c, http.StatusTooManyRequests,
					fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter))
			}

			remaining, resetTime := rl.GetState(actor.UserID)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

			return next(c)
		}
	}
}
