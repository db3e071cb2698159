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

// IncomeHandler handles income HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

type createIncomeRequest struct {
	CategoryID       *uuid.UUID       `json:"categoryId"`
	Amount           *decimal.Decimal `json:"amount"`
	Currency         *string          `json:"currency"`
	Date             *string          `json:"date"`
	RecurrencePeriod *string          `json:"recurrencePeriod"`
	RecurrenceStart  *string          `json:"recurrenceStart"`
	RecurrenceEnd    *string          `json:"recurrenceEnd"`
	Note             *string          `json:"note"`
}

type updateIncomeRequest struct {
	CategoryID       domain.Field[uuid.UUID]       `json:"categoryId"`
	Amount           domain.Field[decimal.Decimal] `json:"amount"`
	Currency         domain.Field[string]          `json:"currency"`
	Date             domain.Field[string]          `json:"date"`
	RecurrencePeriod domain.Field[string]          `json:"recurrencePeriod"`
	RecurrenceStart  domain.Field[string]          `json:"recurrenceStart"`
	RecurrenceEnd    domain.Field[string]          `json:"recurrenceEnd"`
	Note             domain.Field[string]          `json:"note"`
}

// List handles GET /api/incomes
func (h *IncomeHandler) List(c echo.Context) error {
	actor := middleware.GetActor(c)

	incomes, err := h.incomeService.List(actor)
	if err != nil {
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg("Failed to list incomes")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, incomes)
}

// Create handles POST /api/incomes
func (h *IncomeHandler) Create(c echo.Context) error {
	actor := middleware.GetActor(c)

	var req createIncomeRequest
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

	input := service.IncomeInput{
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

	income, err := h.incomeService.Create(actor, input)
	if err != nil {
		return h.mapIncomeError(c, actor, err, "Failed to create income")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("income_id", income.ID.String()).Msg("Income created")
	return respond(c, http.StatusCreated, income)
}

// Update handles PUT /api/incomes/:id
func (h *IncomeHandler) Update(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid income ID")
	}

	var req updateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	patch := domain.IncomePatch{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Note:       req.Note,
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

	income, err := h.incomeService.Update(actor, id, patch)
	if err != nil {
		return h.mapIncomeError(c, actor, err, "Failed to update income")
	}

	return respond(c, http.StatusOK, income)
}

// Delete handles DELETE /api/incomes/:id
func (h *IncomeHandler) Delete(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid income ID")
	}

	if err := h.incomeService.Delete(actor, id); err != nil {
		return h.mapIncomeError(c, actor, err, "Failed to delete income")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("income_id", id.String()).Msg("Income deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *IncomeHandler) mapIncomeError(c echo.Context, actor domain.Actor, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, http.StatusNotFound, "Income not found")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, http.StatusForbidden, "Not allowed to modify this income")
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
