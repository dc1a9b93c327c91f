package repository

import (
	"context"

	"dhulbeeg-backend/internal/domain"
)

// ClientFilters optional findAll criteria. Zero-valued fields contribute no
// clause. AssignedTo/Limit/Offset carry raw query-string tokens; the builder
// parses them with a safe fallback.
type ClientFilters struct {
	ClientType string
	AssignedTo string
	Search     string
	Limit      string
	Offset     string
}

type ClientsRepository interface {
	Create(ctx context.Context, data domain.NewClient) (*domain.Client, error)
	FindAll(ctx context.Context, filters ClientFilters) ([]*domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]*domain.Client, error)
	GetByAgent(ctx context.Context, agentID int64) ([]*domain.Client, error)
	AddNote(ctx context.Context, id int64, note string) (*domain.Client, error)
	GetStatistics(ctx context.Context) (*domain.ClientStatistics, error)
}
