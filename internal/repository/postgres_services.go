package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dhulbeeg-backend/internal/domain"
)

// PostgresServicesRepository services table access.
type PostgresServicesRepository struct {
	db *sql.DB
}

func NewPostgresServicesRepository(db *sql.DB) *PostgresServicesRepository {
	return &PostgresServicesRepository{db: db}
}

var _ ServicesRepository = (*PostgresServicesRepository)(nil)

const serviceSelect = `
	SELECT
		id, title, description, service_type, category, duration,
		price_range, features, contact_email, is_active, created_at, updated_at
	FROM services
`

func scanService(row interface{ Scan(...any) error }) (*domain.Service, error) {
	var (
		s        domain.Service
		features sql.NullString
	)
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.ServiceType,
		&s.Category,
		&s.Duration,
		&s.PriceRange,
		&features,
		&s.ContactEmail,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Features = decodeStringList(features)
	return &s, nil
}

func (r *PostgresServicesRepository) scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	defer rows.Close()
	services := []*domain.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *PostgresServicesRepository) Create(ctx context.Context, data domain.NewService) (*domain.Service, error) {
	isActive := true
	if data.IsActive != nil {
		isActive = *data.IsActive
	}

	features, err := encodeStringList(data.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO services
			(title, description, service_type, category, duration,
			 price_range, features, contact_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, data.Title, data.Description, data.ServiceType, data.Category, data.Duration,
		data.PriceRange, features, data.ContactEmail, isActive,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresServicesRepository) FindAll(ctx context.Context, filters ServiceFilters) ([]*domain.Service, error) {
	b := newCondBuilder()
	if filters.ServiceType != "" {
		b.Eq("service_type", filters.ServiceType)
	}
	if filters.Category != "" {
		b.Eq("category", filters.Category)
	}
	if filters.IsActive != "" {
		b.EqBool("is_active", filters.IsActive)
	}

	query := serviceSelect + ` WHERE 1=1` + b.Conds() +
		` ORDER BY created_at DESC` +
		b.Paginate(filters.Limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	return r.scanServices(rows)
}

func (r *PostgresServicesRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, serviceSelect+` WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return s, nil
}

func (r *PostgresServicesRepository) FindByType(ctx context.Context, serviceType string) ([]*domain.Service, error) {
	rows, err := r.db.QueryContext(ctx, serviceSelect+`
		WHERE service_type = $1 AND is_active = true
		ORDER BY category, title
	`, serviceType)
	if err != nil {
		return nil, fmt.Errorf("failed to query services by type: %w", err)
	}
	return r.scanServices(rows)
}

func (r *PostgresServicesRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Service, error) {
	rows, err := r.db.QueryContext(ctx, serviceSelect+`
		WHERE category = $1 AND is_active = true
		ORDER BY title
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query services by category: %w", err)
	}
	return r.scanServices(rows)
}

func (r *PostgresServicesRepository) Update(ctx context.Context, id int64, patch domain.ServicePatch) (*domain.Service, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return current, nil
	}

	b := newSetBuilder()
	if patch.Title.Set {
		b.Add("title", patch.Title.Value)
	}
	if patch.Description.Set {
		b.Add("description", patch.Description.Value)
	}
	if patch.ServiceType.Set {
		b.Add("service_type", patch.ServiceType.Value)
	}
	if patch.Category.Set {
		b.Add("category", patch.Category.Value)
	}
	if patch.Duration.Set {
		b.Add("duration", patch.Duration.Value)
	}
	if patch.PriceRange.Set {
		b.Add("price_range", patch.PriceRange.Value)
	}
	if patch.Features.Set {
		encoded, err := encodeStringList(patch.Features.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode features: %w", err)
		}
		b.Add("features", encoded)
	}
	if patch.ContactEmail.Set {
		b.Add("contact_email", patch.ContactEmail.Value)
	}
	if patch.IsActive.Set {
		b.Add("is_active", patch.IsActive.Value)
	}

	query := fmt.Sprintf(
		`UPDATE services SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d`,
		b.Clause(), b.NextArg(),
	)
	args := append(b.args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresServicesRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete service: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PostgresServicesRepository) Search(ctx context.Context, term string) ([]*domain.Service, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, fmt.Errorf("search term must be at least 2 characters: %w", ErrInvalidArgument)
	}

	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, serviceSelect+`
		WHERE (title ILIKE $1 OR description ILIKE $2 OR category ILIKE $3)
		  AND is_active = true
		ORDER BY service_type, category
		LIMIT 20
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}
	return r.scanServices(rows)
}

// ToggleActive flips is_active, then re-reads the row so the caller gets the
// stored state rather than a locally computed echo. Two racing toggles still
// interleave, but each response reflects what actually landed.
func (r *PostgresServicesRepository) ToggleActive(ctx context.Context, id int64) (*domain.Service, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE services SET is_active = $1 WHERE id = $2`, !current.IsActive, id,
	); err != nil {
		return nil, fmt.Errorf("failed to toggle service: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresServicesRepository) GetStatistics(ctx context.Context) (*domain.ServiceStatistics, error) {
	var stats domain.ServiceStatistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_services,
			COALESCE(SUM(CASE WHEN is_active = true THEN 1 ELSE 0 END), 0) AS active_services,
			COALESCE(SUM(CASE WHEN service_type = 'real_estate' THEN 1 ELSE 0 END), 0) AS real_estate_services,
			COALESCE(SUM(CASE WHEN service_type = 'legal' THEN 1 ELSE 0 END), 0) AS legal_services,
			COALESCE(SUM(CASE WHEN service_type = 'management' THEN 1 ELSE 0 END), 0) AS management_services,
			COALESCE(SUM(CASE WHEN service_type = 'consultation' THEN 1 ELSE 0 END), 0) AS consultation_services,
			COUNT(DISTINCT category) AS total_categories
		FROM services
	`).Scan(
		&stats.TotalServices,
		&stats.ActiveServices,
		&stats.RealEstateServices,
		&stats.LegalServices,
		&stats.ManagementServices,
		&stats.ConsultationServices,
		&stats.TotalCategories,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get service statistics: %w", err)
	}
	return &stats, nil
}
