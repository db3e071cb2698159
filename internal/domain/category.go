package domain

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// ParseCategoryType converts a wire value into a CategoryType, rejecting
// anything outside the closed set.
func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(s) {
	case CategoryTypeIncome, CategoryTypeExpense:
		return CategoryType(s), nil
	default:
		return "", ErrInvalidCategoryType
	}
}

// Category groups expenses or incomes. Invariant: IsGlobal == true implies
// UserID is nil, and IsGlobal == false implies UserID is set. Global
// categories are visible to everyone but owned by no one.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	IsGlobal  bool         `json:"isGlobal"`
	UserID    *uuid.UUID   `json:"userId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CategoryPatch carries the supplied fields of a partial category update.
type CategoryPatch struct {
	Name Field[string]
	Type Field[CategoryType]
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	// ListForUser returns global categories plus the user's own, ordered by
	// type then name.
	ListForUser(userID uuid.UUID) ([]*Category, error)
	Update(category *Category) (*Category, error)
	// DeleteIfUnreferenced deletes the category only when no expense or
	// income references it, atomically within a single transaction. Returns
	// ErrHasLinkedRecords when a reference exists.
	DeleteIfUnreferenced(id uuid.UUID) error
}
