package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/testutil"
	"github.com/pennywise-app/pennywise-backend/internal/token"
)

func authFixture(t *testing.T) (*AuthService, *testutil.MockUserRepository, *token.Manager) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	tokens := token.NewManager("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens), userRepo, tokens
}

func TestRegister_Success(t *testing.T) {
	authService, _, _ := authFixture(t)

	user, err := authService.Register("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("Expected role USER, got %s", user.Role)
	}
	if user.BaseCurrency != domain.DefaultBaseCurrency {
		t.Errorf("Expected base currency %s, got %s", domain.DefaultBaseCurrency, user.BaseCurrency)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("Expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")); err != nil {
		t.Error("Expected stored hash to verify against the password")
	}
}

func TestRegister_TrimsEmail(t *testing.T) {
	authService, _, _ := authFixture(t)

	user, err := authService.Register("  alice@example.com  ", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected trimmed email, got %q", user.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authService, _, _ := authFixture(t)

	if _, err := authService.Register("alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := authService.Register("alice@example.com", "different")
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Errorf("Expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	authService, _, tokens := authFixture(t)

	registered, err := authService.Register("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, sessionToken, err := authService.Login("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Error("Expected the registered user back")
	}

	claims, err := tokens.Verify(sessionToken)
	if err != nil {
		t.Fatalf("Expected issued token to verify, got %v", err)
	}
	if claims.UserID != registered.ID {
		t.Error("Expected token to carry the user id")
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("Expected token role USER, got %s", claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, _, _ := authFixture(t)

	if _, err := authService.Register("alice@example.com", "hunter22"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, _, err := authService.Login("alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	authService, _, _ := authFixture(t)

	// Unknown email and wrong password map to the same error
	_, _, err := authService.Login("nobody@example.com", "hunter22")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	authService, userRepo, _ := authFixture(t)

	registered, err := authService.Register("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, err := authService.GetUserByID(registered.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", user.Email)
	}

	delete(userRepo.ByID, registered.ID)
	if _, err := authService.GetUserByID(registered.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
