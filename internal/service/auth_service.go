package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/token"
)

// AuthService handles registration, credential verification and session
// token issuance.
type AuthService struct {
	userRepo domain.UserRepository
	tokens   *token.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new USER-role account. Only a one-way hash of the
// password is stored.
func (s *AuthService) Register(email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		BaseCurrency: domain.DefaultBaseCurrency,
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", created.ID.String()).Msg("User registered")
	return created, nil
}

// Login verifies the credential pair and issues a signed session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return user, tokenString, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}
