package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/testutil"
)

func incomeInput(categoryID uuid.UUID) IncomeInput {
	return IncomeInput{
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(2500),
		Currency:   "EUR",
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func incomeFixture(t *testing.T) (*IncomeService, *testutil.MockIncomeRepository, *testutil.MockCategoryRepository) {
	t.Helper()
	incomeRepo := testutil.NewMockIncomeRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	return NewIncomeService(incomeRepo, categoryRepo), incomeRepo, categoryRepo
}

func TestCreateIncome_Success(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	category := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)

	income, err := incomeService.Create(actor, incomeInput(category.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if income.UserID != actor.UserID {
		t.Error("Expected income to be owned by the actor")
	}
	if income.Category == nil || income.Category.ID != category.ID {
		t.Error("Expected validated category to be embedded in the response")
	}
}

func TestCreateIncome_ExpenseCategoryRejected(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	category := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeExpense)

	_, err := incomeService.Create(actor, incomeInput(category.ID))
	if !errors.Is(err, domain.ErrCategoryTypeMismatch) {
		t.Errorf("Expected ErrCategoryTypeMismatch, got %v", err)
	}
}

func TestCreateIncome_NonPositiveAmount(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	category := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)

	input := incomeInput(category.ID)
	input.Amount = decimal.Zero
	_, err := incomeService.Create(actor, input)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestUpdateIncome_OtherUserForbidden(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	owner := userActor()
	category := addCategory(t, categoryRepo, &owner.UserID, domain.CategoryTypeIncome)

	income, err := incomeService.Create(owner, incomeInput(category.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = incomeService.Update(userActor(), income.ID, domain.IncomePatch{
		Amount: domain.FieldOf(decimal.NewFromInt(1)),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestUpdateIncome_CategoryChangeRevalidated(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	other := userActor()
	owned := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)
	foreign := addCategory(t, categoryRepo, &other.UserID, domain.CategoryTypeIncome)

	income, err := incomeService.Create(actor, incomeInput(owned.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = incomeService.Update(actor, income.ID, domain.IncomePatch{
		CategoryID: domain.FieldOf(foreign.ID),
	})
	if !errors.Is(err, domain.ErrForbiddenCategory) {
		t.Errorf("Expected ErrForbiddenCategory, got %v", err)
	}
}

func TestUpdateIncome_MergesPatch(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	category := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)

	income, err := incomeService.Create(actor, incomeInput(category.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	note := "bonus"
	updated, err := incomeService.Update(actor, income.ID, domain.IncomePatch{
		Note:             domain.FieldOf(note),
		RecurrencePeriod: domain.FieldOf(domain.RecurrenceMonthly),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Note == nil || *updated.Note != note {
		t.Error("Expected note to be set")
	}
	if updated.RecurrencePeriod != domain.RecurrenceMonthly {
		t.Errorf("Expected recurrence MONTHLY, got %s", updated.RecurrencePeriod)
	}
	if !updated.Amount.Equal(income.Amount) {
		t.Error("Expected amount unchanged")
	}
}

func TestDeleteIncome(t *testing.T) {
	incomeService, incomeRepo, categoryRepo := incomeFixture(t)
	actor := userActor()
	category := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)

	income, err := incomeService.Create(actor, incomeInput(category.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := incomeService.Delete(userActor(), income.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for another user, got %v", err)
	}
	if err := incomeService.Delete(actor, income.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := incomeRepo.GetByID(income.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("Expected income to be gone")
	}
}

func TestListIncomes_OnlyOwn(t *testing.T) {
	incomeService, _, categoryRepo := incomeFixture(t)
	actor := userActor()
	other := userActor()
	mine := addCategory(t, categoryRepo, &actor.UserID, domain.CategoryTypeIncome)
	theirs := addCategory(t, categoryRepo, &other.UserID, domain.CategoryTypeIncome)

	if _, err := incomeService.Create(actor, incomeInput(mine.ID)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := incomeService.Create(other, incomeInput(theirs.ID)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	incomes, err := incomeService.List(actor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(incomes) != 1 {
		t.Fatalf("Expected 1 income, got %d", len(incomes))
	}
}
