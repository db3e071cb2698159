package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// Claims is the session token payload, binding the token to a user id and
// role for the configured lifetime.
type Claims struct {
	UserID uuid.UUID   `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256-signed session tokens. There is no
// server-side revocation: a token stays valid until natural expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager signing with the given secret.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session token for the given user.
func (m *Manager) Issue(userID uuid.UUID, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a session token. Malformed, expired and
// badly-signed tokens all come back as ErrUnauthorized; callers never learn
// which of the three it was.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
