package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/service"
	"github.com/pennywise-app/pennywise-backend/internal/testutil"
)

func newIncomeHandler(t *testing.T) (*IncomeHandler, *testutil.MockCategoryRepository) {
	t.Helper()
	incomeRepo := testutil.NewMockIncomeRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	incomeService := service.NewIncomeService(incomeRepo, categoryRepo)
	return NewIncomeHandler(incomeService), categoryRepo
}

func TestIncomeCreateHandler_Success(t *testing.T) {
	h, categoryRepo := newIncomeHandler(t)
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	category := newTestCategory(t, categoryRepo, actor.UserID, domain.CategoryTypeIncome)

	body := fmt.Sprintf(`{"categoryId":%q,"amount":"2500","currency":"EUR","date":"2025-06-01","recurrencePeriod":"MONTHLY"}`, category.ID)
	c, rec := actorRequest(actor, http.MethodPost, "/api/incomes", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeEnvelope(t, rec)
	if data["recurrencePeriod"] != "MONTHLY" {
		t.Errorf("Expected recurrence MONTHLY, got %v", data["recurrencePeriod"])
	}
	embedded, ok := data["category"].(map[string]interface{})
	if !ok || embedded["id"] != category.ID.String() {
		t.Error("Expected the category embedded in the response")
	}
}

func TestIncomeCreateHandler_ExpenseCategoryRejected(t *testing.T) {
	h, categoryRepo := newIncomeHandler(t)
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	category := newTestCategory(t, categoryRepo, actor.UserID, domain.CategoryTypeExpense)

	body := fmt.Sprintf(`{"categoryId":%q,"amount":"2500","currency":"EUR","date":"2025-06-01"}`, category.ID)
	c, rec := actorRequest(actor, http.MethodPost, "/api/incomes", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	_, errMsg := decodeEnvelope(t, rec)
	if errMsg != "Category type does not match" {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}

func TestIncomeUpdateHandler_Forbidden(t *testing.T) {
	h, categoryRepo := newIncomeHandler(t)
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	category := newTestCategory(t, categoryRepo, owner.UserID, domain.CategoryTypeIncome)

	body := fmt.Sprintf(`{"categoryId":%q,"amount":"2500","currency":"EUR","date":"2025-06-01"}`, category.ID)
	c, rec := actorRequest(owner, http.MethodPost, "/api/incomes", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	created, _ := decodeEnvelope(t, rec)
	id := created["id"].(string)

	c, rec = actorRequest(stranger, http.MethodPut, "/api/incomes/"+id, `{"amount":"1"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.Update(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	_, errMsg := decodeEnvelope(t, rec)
	if errMsg != "Not allowed to modify this income" {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}

func TestIncomeDeleteHandler_NotFound(t *testing.T) {
	h, _ := newIncomeHandler(t)
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	id := uuid.New().String()

	c, rec := actorRequest(actor, http.MethodDelete, "/api/incomes/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := h.Delete(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	_, errMsg := decodeEnvelope(t, rec)
	if errMsg != "Income not found" {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}
