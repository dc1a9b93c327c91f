package repository

import (
	"context"

	"dhulbeeg-backend/internal/domain"
)

// NewUser registration payload. Role defaults to "user", Department to
// "general". Password arrives already hashed; repositories never see
// plaintext credentials.
type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         string
	Department   string
}

type UsersRepository interface {
	Create(ctx context.Context, data NewUser) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
