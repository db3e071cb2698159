package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
	"github.com/pennywise-app/pennywise-backend/internal/middleware"
	"github.com/pennywise-app/pennywise-backend/internal/service"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsGlobal bool   `json:"isGlobal"`
}

type updateCategoryRequest struct {
	Name domain.Field[string] `json:"name"`
	Type domain.Field[string] `json:"type"`
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c echo.Context) error {
	actor := middleware.GetActor(c)

	categories, err := h.categoryService.List(actor)
	if err != nil {
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg("Failed to list categories")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, categories)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c echo.Context) error {
	actor := middleware.GetActor(c)

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Type == "" {
		return respondError(c, http.StatusBadRequest, "name and type are required")
	}

	ctype, err := domain.ParseCategoryType(req.Type)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid category type")
	}

	category, err := h.categoryService.Create(actor, req.Name, ctype, req.IsGlobal)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidName) {
			return respondError(c, http.StatusBadRequest, "Invalid category name")
		}
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Msg("Failed to create category")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("category_id", category.ID.String()).Msg("Category created")
	return respond(c, http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid category ID")
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	patch := domain.CategoryPatch{Name: req.Name}
	if req.Type.Set && req.Type.Valid {
		ctype, err := domain.ParseCategoryType(req.Type.Value)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid category type")
		}
		patch.Type = domain.FieldOf(ctype)
	}

	category, err := h.categoryService.Update(actor, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Category not found")
		}
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrForbiddenGlobalCategory) {
			return respondError(c, http.StatusForbidden, "Not allowed to update this category")
		}
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Str("category_id", id.String()).Msg("Failed to update category")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid category ID")
	}

	if err := h.categoryService.Delete(actor, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Category not found")
		}
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrForbiddenGlobalCategory) {
			return respondError(c, http.StatusForbidden, "Not allowed to delete this category")
		}
		if errors.Is(err, domain.ErrHasLinkedRecords) {
			return respondError(c, http.StatusBadRequest, "Category has linked expenses or incomes")
		}
		log.Error().Err(err).Str("user_id", actor.UserID.String()).Str("category_id", id.String()).Msg("Failed to delete category")
		return respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}

	log.Info().Str("user_id", actor.UserID.String()).Str("category_id", id.String()).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}
