package repository

import (
	"context"

	"dhulbeeg-backend/internal/domain"
)

// PropertyFilters optional findAll criteria. MinPrice/MaxPrice/Bedrooms carry
// raw query-string tokens parsed by the builder; Bedrooms is a minimum, not
// an exact match.
type PropertyFilters struct {
	PropertyType string
	Status       string
	MinPrice     string
	MaxPrice     string
	Location     string
	Bedrooms     string
	Limit        string
	Offset       string
}

type PropertiesRepository interface {
	Create(ctx context.Context, data domain.NewProperty) (*domain.Property, error)
	FindAll(ctx context.Context, filters PropertyFilters) ([]*domain.Property, error)
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, id int64, patch domain.PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]*domain.Property, error)
	GetFeatured(ctx context.Context, limit int) ([]*domain.Property, error)
	GetStatistics(ctx context.Context) (*domain.PropertyStatistics, error)
}
