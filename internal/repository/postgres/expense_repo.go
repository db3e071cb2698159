package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, user_id, category_id, amount, currency, date,
	recurrence_period, recurrence_start, recurrence_end, is_subscription, note,
	created_at, updated_at`

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (user_id, category_id, amount, currency, date,
			recurrence_period, recurrence_start, recurrence_end, is_subscription, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+expenseColumns,
		expense.UserID, expense.CategoryID, amount, expense.Currency,
		pgtype.Date{Time: expense.Date, Valid: true},
		string(expense.RecurrencePeriod),
		ptrToPgDate(expense.RecurrenceStart), ptrToPgDate(expense.RecurrenceEnd),
		expense.IsSubscription, ptrToPgText(expense.Note),
	)
	return scanExpense(row)
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

// ListForUser returns the user's expenses newest-date-first, capped at
// domain.ListLimit, with the category row embedded.
func (r *ExpenseRepository) ListForUser(userID uuid.UUID) ([]*domain.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.user_id, e.category_id, e.amount, e.currency, e.date,
			e.recurrence_period, e.recurrence_start, e.recurrence_end,
			e.is_subscription, e.note, e.created_at, e.updated_at,
			c.id, c.name, c.type, c.is_global, c.user_id, c.created_at, c.updated_at
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1
		ORDER BY e.date DESC
		LIMIT $2`,
		userID, domain.ListLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		var c domain.Category
		var amount pgtype.Numeric
		var date, recStart, recEnd pgtype.Date
		var note pgtype.Text
		var period, ctype string
		var catUserID pgtype.UUID
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CategoryID, &amount, &e.Currency, &date,
			&period, &recStart, &recEnd, &e.IsSubscription, &note,
			&e.CreatedAt, &e.UpdatedAt,
			&c.ID, &c.Name, &ctype, &c.IsGlobal, &catUserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.Amount = pgNumericToDecimal(amount)
		e.Date = date.Time
		e.RecurrencePeriod = domain.RecurrencePeriod(period)
		e.RecurrenceStart = pgDateToPtr(recStart)
		e.RecurrenceEnd = pgDateToPtr(recEnd)
		e.Note = pgTextToPtr(note)
		c.Type = domain.CategoryType(ctype)
		c.UserID = pgUUIDToPtr(catUserID)
		e.Category = &c
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

// Update persists the full merged field set of an expense
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category_id = $2, amount = $3, currency = $4, date = $5,
			recurrence_period = $6, recurrence_start = $7, recurrence_end = $8,
			is_subscription = $9, note = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+expenseColumns,
		expense.ID, expense.CategoryID, amount, expense.Currency,
		pgtype.Date{Time: expense.Date, Valid: true},
		string(expense.RecurrencePeriod),
		ptrToPgDate(expense.RecurrenceStart), ptrToPgDate(expense.RecurrenceEnd),
		expense.IsSubscription, ptrToPgText(expense.Note),
	)
	updated, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	ct, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var amount pgtype.Numeric
	var date, recStart, recEnd pgtype.Date
	var note pgtype.Text
	var period string
	err := row.Scan(
		&e.ID, &e.UserID, &e.CategoryID, &amount, &e.Currency, &date,
		&period, &recStart, &recEnd, &e.IsSubscription, &note,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	e.Date = date.Time
	e.RecurrencePeriod = domain.RecurrencePeriod(period)
	e.RecurrenceStart = pgDateToPtr(recStart)
	e.RecurrenceEnd = pgDateToPtr(recEnd)
	e.Note = pgTextToPtr(note)
	return &e, nil
}
