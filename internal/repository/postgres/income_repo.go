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

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

const incomeColumns = `id, user_id, category_id, amount, currency, date,
	recurrence_period, recurrence_start, recurrence_end, note,
	created_at, updated_at`

// Create inserts a new income
func (r *IncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(income.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO incomes (user_id, category_id, amount, currency, date,
			recurrence_period, recurrence_start, recurrence_end, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+incomeColumns,
		income.UserID, income.CategoryID, amount, income.Currency,
		pgtype.Date{Time: income.Date, Valid: true},
		string(income.RecurrencePeriod),
		ptrToPgDate(income.RecurrenceStart), ptrToPgDate(income.RecurrenceEnd),
		ptrToPgText(income.Note),
	)
	return scanIncome(row)
}

// GetByID retrieves an income by its ID
func (r *IncomeRepository) GetByID(id uuid.UUID) (*domain.Income, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+incomeColumns+` FROM incomes WHERE id = $1`, id)
	income, err := scanIncome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return income, nil
}

// ListForUser returns the user's incomes newest-date-first, capped at
// domain.ListLimit, with the category row embedded.
func (r *IncomeRepository) ListForUser(userID uuid.UUID) ([]*domain.Income, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.user_id, i.category_id, i.amount, i.currency, i.date,
			i.recurrence_period, i.recurrence_start, i.recurrence_end,
			i.note, i.created_at, i.updated_at,
			c.id, c.name, c.type, c.is_global, c.user_id, c.created_at, c.updated_at
		FROM incomes i
		JOIN categories c ON c.id = i.category_id
		WHERE i.user_id = $1
		ORDER BY i.date DESC
		LIMIT $2`,
		userID, domain.ListLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*domain.Income
	for rows.Next() {
		var in domain.Income
		var c domain.Category
		var amount pgtype.Numeric
		var date, recStart, recEnd pgtype.Date
		var note pgtype.Text
		var period, ctype string
		var catUserID pgtype.UUID
		err := rows.Scan(
			&in.ID, &in.UserID, &in.CategoryID, &amount, &in.Currency, &date,
			&period, &recStart, &recEnd, &note, &in.CreatedAt, &in.UpdatedAt,
			&c.ID, &c.Name, &ctype, &c.IsGlobal, &catUserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		in.Amount = pgNumericToDecimal(amount)
		in.Date = date.Time
		in.RecurrencePeriod = domain.RecurrencePeriod(period)
		in.RecurrenceStart = pgDateToPtr(recStart)
		in.RecurrenceEnd = pgDateToPtr(recEnd)
		in.Note = pgTextToPtr(note)
		c.Type = domain.CategoryType(ctype)
		c.UserID = pgUUIDToPtr(catUserID)
		in.Category = &c
		incomes = append(incomes, &in)
	}
	return incomes, rows.Err()
}

// Update persists the full merged field set of an income
func (r *IncomeRepository) Update(income *domain.Income) (*domain.Income, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(income.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE incomes
		SET category_id = $2, amount = $3, currency = $4, date = $5,
			recurrence_period = $6, recurrence_start = $7, recurrence_end = $8,
			note = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+incomeColumns,
		income.ID, income.CategoryID, amount, income.Currency,
		pgtype.Date{Time: income.Date, Valid: true},
		string(income.RecurrencePeriod),
		ptrToPgDate(income.RecurrenceStart), ptrToPgDate(income.RecurrenceEnd),
		ptrToPgText(income.Note),
	)
	updated, err := scanIncome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an income
func (r *IncomeRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	ct, err := r.pool.Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var in domain.Income
	var amount pgtype.Numeric
	var date, recStart, recEnd pgtype.Date
	var note pgtype.Text
	var period string
	err := row.Scan(
		&in.ID, &in.UserID, &in.CategoryID, &amount, &in.Currency, &date,
		&period, &recStart, &recEnd, &note, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Amount = pgNumericToDecimal(amount)
	in.Date = date.Time
	in.RecurrencePeriod = domain.RecurrencePeriod(period)
	in.RecurrenceStart = pgDateToPtr(recStart)
	in.RecurrenceEnd = pgDateToPtr(recEnd)
	in.Note = pgTextToPtr(note)
	return &in, nil
}
