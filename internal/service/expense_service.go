package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// ExpenseService applies the ownership and validation rules for expenses.
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ExpenseInput carries the required and optional fields of an expense create.
type ExpenseInput struct {
	CategoryID       uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	Date             time.Time
	RecurrencePeriod domain.RecurrencePeriod
	RecurrenceStart  *time.Time
	RecurrenceEnd    *time.Time
	IsSubscription   bool
	Note             *string
}

// List returns the actor's expenses newest-date-first, capped at
// domain.ListLimit, with categories embedded.
func (s *ExpenseService) List(actor domain.Actor) ([]*domain.Expense, error) {
	return s.expenseRepo.ListForUser(actor.UserID)
}

// Create validates the amount and the category reference, then persists a
// new expense owned by the actor.
func (s *ExpenseService) Create(actor domain.Actor, input ExpenseInput) (*domain.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	category, err := resolveCategory(s.categoryRepo, actor, input.CategoryID, domain.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		UserID:           actor.UserID,
		CategoryID:       input.CategoryID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		Date:             input.Date,
		RecurrencePeriod: input.RecurrencePeriod,
		RecurrenceStart:  input.RecurrenceStart,
		RecurrenceEnd:    input.RecurrenceEnd,
		IsSubscription:   input.IsSubscription,
		Note:             input.Note,
	}
	if expense.RecurrencePeriod == "" {
		expense.RecurrencePeriod = domain.RecurrenceNone
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}
	created.Category = category
	return created, nil
}

// Update applies a partial update to an expense owned by the actor. The
// category reference is only re-validated when it actually changes; omitted
// or null fields keep their current value.
func (s *ExpenseService) Update(actor domain.Actor, id uuid.UUID, patch domain.ExpensePatch) (*domain.Expense, error) {
	existing, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	category := existing.Category
	nextCategoryID := existing.CategoryID
	if patch.CategoryID.Set && patch.CategoryID.Valid && patch.CategoryID.Value != existing.CategoryID {
		category, err = resolveCategory(s.categoryRepo, actor, patch.CategoryID.Value, domain.CategoryTypeExpense)
		if err != nil {
			return nil, err
		}
		nextCategoryID = patch.CategoryID.Value
	}

	if patch.Amount.Set && patch.Amount.Valid && !patch.Amount.Value.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	next := *existing
	next.CategoryID = nextCategoryID
	next.Category = nil
	next.Amount = patch.Amount.Get(existing.Amount)
	next.Currency = patch.Currency.Get(existing.Currency)
	next.Date = patch.Date.Get(existing.Date)
	next.RecurrencePeriod = patch.RecurrencePeriod.Get(existing.RecurrencePeriod)
	next.RecurrenceStart = patch.RecurrenceStart.GetPtr(existing.RecurrenceStart)
	next.RecurrenceEnd = patch.RecurrenceEnd.GetPtr(existing.RecurrenceEnd)
	next.IsSubscription = patch.IsSubscription.Get(existing.IsSubscription)
	next.Note = patch.Note.GetPtr(existing.Note)

	updated, err := s.expenseRepo.Update(&next)
	if err != nil {
		return nil, err
	}
	updated.Category = category
	return updated, nil
}

// Delete removes an expense owned by the actor.
func (s *ExpenseService) Delete(actor domain.Actor, id uuid.UUID) error {
	existing, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return s.expenseRepo.Delete(id)
}

// resolveCategory looks up a referenced category and checks that it exists,
// matches the record kind, and is either global or owned by the actor.
func resolveCategory(repo domain.CategoryRepository, actor domain.Actor, id uuid.UUID, want domain.CategoryType) (*domain.Category, error) {
	category, err := repo.GetByID(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	if category.Type != want {
		return nil, domain.ErrCategoryTypeMismatch
	}
	if !category.IsGlobal && (category.UserID == nil || *category.UserID != actor.UserID) {
		return nil, domain.ErrForbiddenCategory
	}
	return category, nil
}
