package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/middleware"
	"github.com/pennywise-app/pennywise-backend/internal/service"
)

// AuthHandler handles registration, login, logout and session introspection.
type AuthHandler struct {
	authService  *service.AuthService
	cookieTTL    time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user without the password hash.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BaseCurrency string `json:"baseCurrency"`
	CreatedAt    string `json:"createdAt"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "email and password are required")
	}

	user, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return respondError(c, http.StatusConflict, "Email already registered")
		}
		log.Error().Err(err).Msg("Failed to register user")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "email and password are required")
	}

	user, tokenString, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "Invalid email or password")
		}
		log.Error().Err(err).Msg("Failed to log in user")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return respond(c, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/auth/logout. Sessions are stateless: the cookie
// is cleared client-side and the token simply ages out.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return respond(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	actor := middleware.GetActor(c)

	user, err := h.authService.GetUserByID(actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondError(c, http.StatusNotFound, "User not found")
		}
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg("Failed to get current user")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Role:         string(user.Role),
		BaseCurrency: user.BaseCurrency,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}
