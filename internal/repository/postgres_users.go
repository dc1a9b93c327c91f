package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dhulbeeg-backend/internal/domain"
)

// PostgresUsersRepository users table access. The staff directory is managed
// out of band; this service only registers accounts and resolves them for
// login and display joins.
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userSelect = `
	SELECT id, email, password, name, phone, role, department, created_at, updated_at
	FROM users
`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.Role,
		&u.Department,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepository) Create(ctx context.Context, data NewUser) (*domain.User, error) {
	if data.Role == "" {
		data.Role = domain.UserRoleUser
	}
	if data.Department == "" {
		data.Department = "general"
	}

	existing, err := r.GetByEmail(ctx, data.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists: %w", data.Email, ErrConflict)
	}

	var phone any
	if data.Phone != "" {
		phone = data.Phone
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, name, phone, role, department)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, data.Email, data.PasswordHash, data.Name, phone, data.Role, data.Department).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user with email %s already exists: %w", data.Email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresUsersRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUsersRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE email = $1`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}
