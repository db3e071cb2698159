package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income mirrors Expense without the subscription flag. Its category must be
// INCOME-typed.
type Income struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"userId"`
	CategoryID       uuid.UUID        `json:"categoryId"`
	Category         *Category        `json:"category,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	Date             time.Time        `json:"date"`
	RecurrencePeriod RecurrencePeriod `json:"recurrencePeriod"`
	RecurrenceStart  *time.Time       `json:"recurrenceStart"`
	RecurrenceEnd    *time.Time       `json:"recurrenceEnd"`
	Note             *string          `json:"note"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// IncomePatch carries the supplied fields of a partial income update.
type IncomePatch struct {
	CategoryID       Field[uuid.UUID]
	Amount           Field[decimal.Decimal]
	Currency         Field[string]
	Date             Field[time.Time]
	RecurrencePeriod Field[RecurrencePeriod]
	RecurrenceStart  Field[time.Time]
	RecurrenceEnd    Field[time.Time]
	Note             Field[string]
}

// IncomeRepository defines the interface for income persistence operations
type IncomeRepository interface {
	Create(income *Income) (*Income, error)
	GetByID(id uuid.UUID) (*Income, error)
	ListForUser(userID uuid.UUID) ([]*Income, error)
	Update(income *Income) (*Income, error)
	Delete(id uuid.UUID) error
}
