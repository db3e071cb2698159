package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/token"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = "accessToken"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// actorKey is the context key for the authenticated actor
const actorKey contextKey = "actor"

// SessionMiddleware validates the session cookie and resolves the acting
// user for downstream authorization checks.
type SessionMiddleware struct {
	tokens *token.Manager
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(tokens *token.Manager) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Authenticate returns an Echo middleware that rejects requests without a
// valid session cookie. Expired and malformed tokens get the same message.
func (m *SessionMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return errorResponse(c, http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := m.tokens.Verify(cookie.Value)
			if err != nil {
				log.Debug().Err(err).Msg("Session token validation failed")
				return errorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			SetActor(c, domain.Actor{
				UserID: claims.UserID,
				Role:   claims.Role,
			})

			return next(c)
		}
	}
}

// SetActor stores the authenticated actor on the request context.
func SetActor(c echo.Context, actor domain.Actor) {
	ctx := context.WithValue(c.Request().Context(), actorKey, actor)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetActor returns the authenticated actor from the request context. The
// zero Actor means the request never passed Authenticate.
func GetActor(c echo.Context) domain.Actor {
	actor, _ := c.Request().Context().Value(actorKey).(domain.Actor)
	return actor
}
