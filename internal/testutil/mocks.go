package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID    map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:    make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailAlreadyExists
	}
	u := *user
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.ByID[u.ID] = &u
	m.ByEmail[u.Email] = &u
	return &u, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
	// Linked reports whether a category id has linked records; wired up by
	// the mock expense/income repositories in tests.
	Linked func(id uuid.UUID) bool
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	c := *category
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.Categories[c.ID] = &c
	return &c, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

// ListForUser returns global categories plus the user's own, ordered by type
// then name.
func (m *MockCategoryRepository) ListForUser(userID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, c := range m.Categories {
		if c.IsGlobal || (c.UserID != nil && *c.UserID == userID) {
			copied := *c
			categories = append(categories, &copied)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Type != categories[j].Type {
			return categories[i].Type < categories[j].Type
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	existing, ok := m.Categories[category.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing.Name = category.Name
	existing.Type = category.Type
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

// DeleteIfUnreferenced deletes a category unless linked records exist
func (m *MockCategoryRepository) DeleteIfUnreferenced(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrNotFound
	}
	if m.Linked != nil && m.Linked(id) {
		return domain.ErrHasLinkedRecords
	}
	delete(m.Categories, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[uuid.UUID]*domain.Expense
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.Expense),
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	e := *expense
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.Expenses[e.ID] = &e
	copied := e
	return &copied, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		copied := *expense
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

// ListForUser returns the user's expenses newest-date-first, capped at
// domain.ListLimit.
func (m *MockExpenseRepository) ListForUser(userID uuid.UUID) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for _, e := range m.Expenses {
		if e.UserID == userID {
			copied := *e
			expenses = append(expenses, &copied)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	if len(expenses) > domain.ListLimit {
		expenses = expenses[:domain.ListLimit]
	}
	return expenses, nil
}

// Update updates an expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	if _, ok := m.Expenses[expense.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	e := *expense
	e.UpdatedAt = time.Now()
	m.Expenses[e.ID] = &e
	copied := e
	return &copied, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// HasCategory reports whether any stored expense references the category
func (m *MockExpenseRepository) HasCategory(id uuid.UUID) bool {
	for _, e := range m.Expenses {
		if e.CategoryID == id {
			return true
		}
	}
	return false
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes map[uuid.UUID]*domain.Income
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{
		Incomes: make(map[uuid.UUID]*domain.Income),
	}
}

// Create creates a new income
func (m *MockIncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	in := *income
	in.ID = uuid.New()
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	m.Incomes[in.ID] = &in
	copied := in
	return &copied, nil
}

// GetByID retrieves an income by ID
func (m *MockIncomeRepository) GetByID(id uuid.UUID) (*domain.Income, error) {
	if income, ok := m.Incomes[id]; ok {
		copied := *income
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

// ListForUser returns the user's incomes newest-date-first, capped at
// domain.ListLimit.
func (m *MockIncomeRepository) ListForUser(userID uuid.UUID) ([]*domain.Income, error) {
	var incomes []*domain.Income
	for _, in := range m.Incomes {
		if in.UserID == userID {
			copied := *in
			incomes = append(incomes, &copied)
		}
	}
	sort.Slice(incomes, func(i, j int) bool {
		return incomes[i].Date.After(incomes[j].Date)
	})
	if len(incomes) > domain.ListLimit {
		incomes = incomes[:domain.ListLimit]
	}
	return incomes, nil
}

// Update updates an income
func (m *MockIncomeRepository) Update(income *domain.Income) (*domain.Income, error) {
	if _, ok := m.Incomes[income.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	in := *income
	in.UpdatedAt = time.Now()
	m.Incomes[in.ID] = &in
	copied := in
	return &copied, nil
}

// Delete removes an income
func (m *MockIncomeRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Incomes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Incomes, id)
	return nil
}

// HasCategory reports whether any stored income references the category
func (m *MockIncomeRepository) HasCategory(id uuid.UUID) bool {
	for _, in := range m.Incomes {
		if in.CategoryID == id {
			return true
		}
	}
	return false
}
