package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// DefaultBaseCurrency is assigned to users at registration.
const DefaultBaseCurrency = "EUR"

// User represents a registered account. PasswordHash never leaves the
// service layer; handlers map users to a response type without it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	BaseCurrency string    `json:"baseCurrency"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor is the authenticated identity performing a request, resolved by the
// session middleware and passed to every service operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// CanManageGlobal reports whether the actor may update or delete global
// categories, bypassing the per-user ownership check.
func (a Actor) CanManageGlobal() bool {
	return a.Role == RoleAdmin
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByEmail(email string) (*User, error)
}
