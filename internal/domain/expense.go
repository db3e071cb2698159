package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecurrencePeriod string

const (
	RecurrenceNone    RecurrencePeriod = "NONE"
	RecurrenceWeekly  RecurrencePeriod = "WEEKLY"
	RecurrenceMonthly RecurrencePeriod = "MONTHLY"
	RecurrenceYearly  RecurrencePeriod = "YEARLY"
)

// ParseRecurrencePeriod converts a wire value into a RecurrencePeriod,
// rejecting anything outside the closed set.
func ParseRecurrencePeriod(s string) (RecurrencePeriod, error) {
	switch RecurrencePeriod(s) {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return RecurrencePeriod(s), nil
	default:
		return "", ErrInvalidRecurrence
	}
}

// ListLimit caps expense and income listings.
const ListLimit = 100

// Expense is a single spending record owned by exactly one user and linked
// to exactly one EXPENSE-typed category.
type Expense struct {
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
	IsSubscription   bool             `json:"isSubscription"`
	Note             *string          `json:"note"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ExpensePatch carries the supplied fields of a partial expense update.
type ExpensePatch struct {
	CategoryID       Field[uuid.UUID]
	Amount           Field[decimal.Decimal]
	Currency         Field[string]
	Date             Field[time.Time]
	RecurrencePeriod Field[RecurrencePeriod]
	RecurrenceStart  Field[time.Time]
	RecurrenceEnd    Field[time.Time]
	IsSubscription   Field[bool]
	Note             Field[string]
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id uuid.UUID) (*Expense, error)
	// ListForUser returns the user's expenses newest-date-first, capped at
	// ListLimit, with the category row embedded.
	ListForUser(userID uuid.UUID) ([]*Expense, error)
	Update(expense *Expense) (*Expense, error)
	Delete(id uuid.UUID) error
}
