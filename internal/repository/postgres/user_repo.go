package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise-app/pennywise-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, role, base_currency, created_at, updated_at`

// Create inserts a new user. Duplicate emails surface as ErrEmailAlreadyExists.
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, base_currency)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, string(user.Role), user.BaseCurrency,
	)
	created, err := scanUser(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.BaseCurrency, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
