package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/middleware"
	"github.com/pennywise-app/pennywise-backend/internal/service"
	"github.com/pennywise-app/pennywise-backend/internal/testutil"
	"github.com/pennywise-app/pennywise-backend/internal/token"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *service.AuthService) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	tokens := token.NewManager("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens)
	return NewAuthHandler(authService, tokens.TTL(), false), authService
}

func jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (map[string]interface{}, string) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *APIError       `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	var data map[string]interface{}
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			t.Fatalf("Failed to decode data: %v", err)
		}
	}
	if envelope.Error != nil {
		return data, envelope.Error.Message
	}
	return data, ""
}

func TestRegisterHandler_Success(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"hunter22"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	data, errMsg := decodeEnvelope(t, rec)
	if errMsg != "" {
		t.Fatalf("Expected no error in body, got %q", errMsg)
	}
	if data["email"] != "alice@example.com" {
		t.Errorf("Expected email in response, got %v", data["email"])
	}
	if data["role"] != "USER" {
		t.Errorf("Expected role USER, got %v", data["role"])
	}
	if _, ok := data["passwordHash"]; ok {
		t.Error("Expected password hash to be absent from the response")
	}
}

func TestRegisterHandler_MissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	_, errMsg := decodeEnvelope(t, rec)
	if errMsg != "email and password are required" {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	h, authService := newAuthHandler(t)
	if _, err := authService.Register("alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, rec := jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"other"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
	_, errMsg := decodeEnvelope(t, rec)
	if errMsg != "Email already registered" {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}

func TestLoginHandler_SetsSessionCookie(t *testing.T) {
	h, authService := newAuthHandler(t)
	if _, err := authService.Register("alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, rec := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"hunter22"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			session = cookie
		}
	}
	if session == nil {
		t.Fatal("Expected a session cookie to be set")
	}
	if session.Value == "" {
		t.Error("Expected a non-empty session token")
	}
	if !session.HttpOnly {
		t.Error("Expected session cookie to be HttpOnly")
	}
	if session.Path != "/" {
		t.Errorf("Expected cookie path /, got %s", session.Path)
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Error("Expected SameSite=Lax")
	}

	data, _ := decodeEnvelope(t, rec)
	if data["email"] != "alice@example.com" {
		t.Errorf("Expected user in response, got %v", data)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h, authService := newAuthHandler(t)
	if _, err := authService.Register("alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, body := range []string{
		`{"email":"alice@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"hunter22"}`,
	} {
		c, rec := jsonRequest(http.MethodPost, "/api/auth/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
		_, errMsg := decodeEnvelope(t, rec)
		if errMsg != "Invalid email or password" {
			t.Errorf("Unexpected error message: %q", errMsg)
		}
	}
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := jsonRequest(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			session = cookie
		}
	}
	if session == nil {
		t.Fatal("Expected the session cookie to be rewritten")
	}
	if session.MaxAge >= 0 {
		t.Error("Expected an expired cookie")
	}
	if session.Value != "" {
		t.Error("Expected an empty cookie value")
	}
}

func TestMeHandler(t *testing.T) {
	h, authService := newAuthHandler(t)
	user, err := authService.Register("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, rec := jsonRequest(http.MethodGet, "/api/auth/me", "")
	middleware.SetActor(c, domain.Actor{UserID: user.ID, Role: user.Role})

	if err := h.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)
	if data["id"] != user.ID.String() {
		t.Errorf("Expected user id %s, got %v", user.ID, data["id"])
	}
}
