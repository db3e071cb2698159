package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, type, is_global, user_id, created_at, updated_at`

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, type, is_global, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		category.Name, string(category.Type), category.IsGlobal, ptrToPgUUID(category.UserID),
	)
	return scanCategory(row)
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListForUser returns global categories plus the user's own, ordered by type
// then name.
func (r *CategoryRepository) ListForUser(userID uuid.UUID) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE is_global OR user_id = $1
		ORDER BY type ASC, name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update persists the category's name and type
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, type = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		category.ID, category.Name, string(category.Type),
	)
	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteIfUnreferenced deletes the category inside a single transaction,
// checking for linked expenses and incomes first so a concurrent insert
// cannot slip between the check and the delete. The RESTRICT foreign keys on
// expenses.category_id and incomes.category_id act as a backstop.
func (r *CategoryRepository) DeleteIfUnreferenced(id uuid.UUID) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var linked bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = $1)
		    OR EXISTS (SELECT 1 FROM incomes  WHERE category_id = $1)`,
		id,
	).Scan(&linked)
	if err != nil {
		return err
	}
	if linked {
		return domain.ErrHasLinkedRecords
	}

	ct, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return domain.ErrHasLinkedRecords
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var ctype string
	var userID pgtype.UUID
	if err := row.Scan(&c.ID, &c.Name, &ctype, &c.IsGlobal, &userID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Type = domain.CategoryType(ctype)
	c.UserID = pgUUIDToPtr(userID)
	return &c, nil
}
