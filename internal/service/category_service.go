package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// CategoryService applies the ownership and validation rules for categories.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns global categories plus the actor's own, ordered by type then
// name.
func (s *CategoryService) List(actor domain.Actor) ([]*domain.Category, error) {
	return s.categoryRepo.ListForUser(actor.UserID)
}

// Create creates a category. A global category carries no owner reference; a
// private one is owned by the actor.
func (s *CategoryService) Create(actor domain.Actor, name string, ctype domain.CategoryType, isGlobal bool) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	category := &domain.Category{
		Name:     name,
		Type:     ctype,
		IsGlobal: isGlobal,
	}
	if !isGlobal {
		userID := actor.UserID
		category.UserID = &userID
	}

	return s.categoryRepo.Create(category)
}

// Update applies a partial update to a category the actor may modify.
// Omitted fields keep their current value.
func (s *CategoryService) Update(actor domain.Actor, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(actor, existing); err != nil {
		return nil, err
	}

	next := *existing
	if patch.Name.Set && patch.Name.Valid {
		next.Name = strings.TrimSpace(patch.Name.Value)
	}
	next.Type = patch.Type.Get(existing.Type)

	return s.categoryRepo.Update(&next)
}

// Delete removes a category the actor may modify, failing with
// ErrHasLinkedRecords while any expense or income still references it.
func (s *CategoryService) Delete(actor domain.Actor, id uuid.UUID) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.authorize(actor, existing); err != nil {
		return err
	}

	return s.categoryRepo.DeleteIfUnreferenced(id)
}

// authorize decides whether the actor may mutate the category. Global
// categories are owned by nobody and reserved for actors with the
// global-management capability.
func (s *CategoryService) authorize(actor domain.Actor, category *domain.Category) error {
	if category.IsGlobal {
		if !actor.CanManageGlobal() {
			return domain.ErrForbiddenGlobalCategory
		}
		return nil
	}
	if category.UserID == nil || *category.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}
