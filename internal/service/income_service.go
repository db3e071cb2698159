package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// IncomeService applies the ownership and validation rules for incomes.
type IncomeService struct {
	incomeRepo   domain.IncomeRepository
	categoryRepo domain.CategoryRepository
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository, categoryRepo domain.CategoryRepository) *IncomeService {
	return &IncomeService{
		incomeRepo:   incomeRepo,
		categoryRepo: categoryRepo,
	}
}

// IncomeInput carries the required and optional fields of an income create.
type IncomeInput struct {
	CategoryID       uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	Date             time.Time
	RecurrencePeriod domain.RecurrencePeriod
	RecurrenceStart  *time.Time
	RecurrenceEnd    *time.Time
	Note             *string
}

// List returns the actor's incomes newest-date-first, capped at
// domain.ListLimit, with categories embedded.
func (s *IncomeService) List(actor domain.Actor) ([]*domain.Income, error) {
	return s.incomeRepo.ListForUser(actor.UserID)
}

// Create validates the amount and the category reference, then persists a
// new income owned by the actor.
func (s *IncomeService) Create(actor domain.Actor, input IncomeInput) (*domain.Income, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	category, err := resolveCategory(s.categoryRepo, actor, input.CategoryID, domain.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}

	income := &domain.Income{
		UserID:           actor.UserID,
		CategoryID:       input.CategoryID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		Date:             input.Date,
		RecurrencePeriod: input.RecurrencePeriod,
		RecurrenceStart:  input.RecurrenceStart,
		RecurrenceEnd:    input.RecurrenceEnd,
		Note:             input.Note,
	}
	if income.RecurrencePeriod == "" {
		income.RecurrencePeriod = domain.RecurrenceNone
	}

	created, err := s.incomeRepo.Create(income)
	if err != nil {
		return nil, err
	}
	created.Category = category
	return created, nil
}

// Update applies a partial update to an income owned by the actor. The
// category reference is only re-validated when it actually changes; omitted
// or null fields keep their current value.
func (s *IncomeService) Update(actor domain.Actor, id uuid.UUID, patch domain.IncomePatch) (*domain.Income, error) {
	existing, err := s.incomeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	category := existing.Category
	nextCategoryID := existing.CategoryID
	if patch.CategoryID.Set && patch.CategoryID.Valid && patch.CategoryID.Value != existing.CategoryID {
		category, err = resolveCategory(s.categoryRepo, actor, patch.CategoryID.Value, domain.CategoryTypeIncome)
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
	next.Note = patch.Note.GetPtr(existing.Note)

	updated, err := s.incomeRepo.Update(&next)
	if err != nil {
		return nil, err
	}
	updated.Category = category
	return updated, nil
}

// Delete removes an income owned by the actor.
func (s *IncomeService) Delete(actor domain.Actor, id uuid.UUID) error {
	existing, err := s.incomeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return s.incomeRepo.Delete(id)
}
