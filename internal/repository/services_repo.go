package repository

import (
	"context"

	"dhulbeeg-backend/internal/domain"
)

// ServiceFilters optional findAll criteria. IsActive is tri-state:
// "true"/"false" filter, anything else means no filter.
type ServiceFilters struct {
	ServiceType string
	Category    string
	IsActive    string
	Limit       string
	Offset      string
}

type ServicesRepository interface {
	Create(ctx context.Context, data domain.NewService) (*domain.Service, error)
	FindAll(ctx context.Context, filters ServiceFilters) ([]*domain.Service, error)
	FindByID(ctx context.Context, id int64) (*domain.Service, error)
	FindByType(ctx context.Context, serviceType string) ([]*domain.Service, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, patch domain.ServicePatch) (*domain.Service, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]*domain.Service, error)
	ToggleActive(ctx context.Context, id int64) (*domain.Service, error)
	GetStatistics(ctx context.Context) (*domain.ServiceStatistics, error)
}
