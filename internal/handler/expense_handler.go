package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/middleware"
	"github.com/pennywise-app/pennywise-backend/internal/service"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type createExpenseRequest struct {
	CategoryID       *uuid.UUID       `json:"categoryId"`
	Amount           *decimal.Decimal `json:"amount"`
	Currency         *string          `json:"currency"`
	Date             *string          `json:"date"`
	RecurrencePeriod *string          `json:"recurrencePeriod"`
	RecurrenceStart  *string          `json:"recurrenceStart"`
	RecurrenceEnd    *string          `json:"recurrenceEnd"`
	IsSubscription   *bool            `json:"isSubscription"`
	Note             *string          `json:"note"`
}

type updateExpenseRequest struct {
	CategoryID       domain.Field[uuid.UUID]       `json:"categoryId"`
	Amount           domain.Field[decimal.Decimal] `json:"amount"`
	Currency         domain.Field[string]          `json:"currency"`
	Date             domain.Field[string]          `json:"date"`
	RecurrencePeriod domain.Field[string]          `json:"recurrencePeriod"`
	RecurrenceStart  domain.Field[string]          `json:"recurrenceStart"`
	RecurrenceEnd    domain.Field[string]          `json:"recurrenceEnd"`
	IsSubscription   domain.Field[bool]            `json:"isSubscription"`
	Note             domain.Field[string]          `json:"note"`
}

// List handles GET /api/expenses
func (h *ExpenseHandler) List(c echo.Context) error {
	actor := middleware.GetActor(c)

	expenses, err := h.expenseService.List(actor)
	if err != nil {
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg("Failed to list expenses")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, expenses)
}

// Create handles POST /api/expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	actor := middleware.GetActor(c)

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.CategoryID == nil || req.Amount == nil || req.Currency == nil || req.Date == nil {
		return respondError(c, http.StatusBadRequest, "categoryId, amount, currency and date are required")
	}

	date, err := parseDate(*req.Date)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid date")
	}

	input := service.ExpenseInput{
		CategoryID:       *req.CategoryID,
		Amount:           *req.Amount,
		Currency:         *req.Currency,
		Date:             date,
		RecurrencePeriod: domain.RecurrenceNone,
		Note:             req.Note,
	}
	if req.RecurrencePeriod != nil {
		period, err := domain.ParseRecurrencePeriod(*req.RecurrencePeriod)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence period")
		}
		input.RecurrencePeriod = period
	}
	if req.RecurrenceStart != nil {
		start, err := parseDate(*req.RecurrenceStart)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence start date")
		}
		input.RecurrenceStart = &start
	}
	if req.RecurrenceEnd != nil {
		end, err := parseDate(*req.RecurrenceEnd)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence end date")
		}
		input.RecurrenceEnd = &end
	}
	if req.IsSubscription != nil {
		input.IsSubscription = *req.IsSubscription
	}

	expense, err := h.expenseService.Create(actor, input)
	if err != nil {
		return h.mapExpenseError(c, actor, err, "Failed to create expense")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("expense_id", expense.ID.String()).Msg("Expense created")
	return respond(c, http.StatusCreated, expense)
}

// Update handles PUT /api/expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid expense ID")
	}

	var req updateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	patch := domain.ExpensePatch{
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		IsSubscription: req.IsSubscription,
		Note:           req.Note,
	}
	if req.Date.Set && req.Date.Valid {
		date, err := parseDate(req.Date.Value)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid date")
		}
		patch.Date = domain.FieldOf(date)
	}
	if req.RecurrencePeriod.Set && req.RecurrencePeriod.Valid {
		period, err := domain.ParseRecurrencePeriod(req.RecurrencePeriod.Value)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence period")
		}
		patch.RecurrencePeriod = domain.FieldOf(period)
	}
	if req.RecurrenceStart.Set && req.RecurrenceStart.Valid {
		start, err := parseDate(req.RecurrenceStart.Value)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence start date")
		}
		patch.RecurrenceStart = domain.FieldOf(start)
	}
	if req.RecurrenceEnd.Set && req.RecurrenceEnd.Valid {
		end, err := parseDate(req.RecurrenceEnd.Value)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid recurrence end date")
		}
		patch.RecurrenceEnd = domain.FieldOf(end)
	}

	expense, err := h.expenseService.Update(actor, id, patch)
	if err != nil {
		return h.mapExpenseError(c, actor, err, "Failed to update expense")
	}

	return respond(c, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid expense ID")
	}

	if err := h.expenseService.Delete(actor, id); err != nil {
		return h.mapExpenseError(c, actor, err, "Failed to delete expense")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("expense_id", id.String()).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) mapExpenseError(c echo.Context, actor domain.Actor, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, http.StatusNotFound, "Expense not found")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, http.StatusForbidden, "Not allowed to modify this expense")
	case errors.Is(err, domain.ErrForbiddenCategory):
		return respondError(c, http.StatusForbidden, "Category belongs to another user")
	case errors.Is(err, domain.ErrInvalidAmount):
		return respondError(c, http.StatusBadRequest, "Amount must be greater than zero")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return respondError(c, http.StatusBadRequest, "Category not found")
	case errors.Is(err, domain.ErrCategoryTypeMismatch):
		return respondError(c, http.StatusBadRequest, "Category type does not match")
	default:
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg(logMsg)
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
