package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dhulbeeg-backend/internal/domain"
)

// PostgresPropertiesRepository properties table access.
type PostgresPropertiesRepository struct {
	db *sql.DB
}

func NewPostgresPropertiesRepository(db *sql.DB) *PostgresPropertiesRepository {
	return &PostgresPropertiesRepository{db: db}
}

var _ PropertiesRepository = (*PostgresPropertiesRepository)(nil)

const propertySelect = `
	SELECT
		p.id, p.title, p.description, p.location, p.price, p.property_type,
		p.status, p.bedrooms, p.bathrooms, p.area, p.features, p.images,
		p.agent_id, p.created_at, p.updated_at,
		u.name AS agent_name,
		u.email AS agent_email,
		u.phone AS agent_phone
	FROM properties p
	LEFT JOIN users u ON p.agent_id = u.id
`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	var (
		p        domain.Property
		features sql.NullString
		images   sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Price,
		&p.PropertyType,
		&p.Status,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&features,
		&images,
		&p.AgentID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AgentName,
		&p.AgentEmail,
		&p.AgentPhone,
	)
	if err != nil {
		return nil, err
	}
	p.Features = decodeStringList(features)
	p.Images = decodeStringList(images)
	return &p, nil
}

func (r *PostgresPropertiesRepository) Create(ctx context.Context, data domain.NewProperty) (*domain.Property, error) {
	if data.Status == "" {
		data.Status = domain.PropertyStatusAvailable
	}

	features, err := encodeStringList(data.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}
	images, err := encodeStringList(data.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to encode images: %w", err)
	}

	var agentID any
	if data.AgentID != nil {
		agentID = *data.AgentID
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO properties
			(title, description, location, price, property_type, status,
			 bedrooms, bathrooms, area, features, images, agent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, data.Title, data.Description, data.Location, data.Price, data.PropertyType,
		data.Status, data.Bedrooms, data.Bathrooms, data.Area, features, images, agentID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresPropertiesRepository) FindAll(ctx context.Context, filters PropertyFilters) ([]*domain.Property, error) {
	b := newCondBuilder()
	if filters.PropertyType != "" {
		b.Eq("p.property_type", filters.PropertyType)
	}
	if filters.Status != "" {
		b.Eq("p.status", filters.Status)
	}
	if filters.MinPrice != "" {
		b.GteFloat("p.price", filters.MinPrice)
	}
	if filters.MaxPrice != "" {
		b.LteFloat("p.price", filters.MaxPrice)
	}
	if filters.Location != "" {
		b.Like("p.location", filters.Location)
	}
	if filters.Bedrooms != "" {
		b.GteInt("p.bedrooms", filters.Bedrooms)
	}

	query := propertySelect + ` WHERE 1=1` + b.Conds() +
		` ORDER BY p.created_at DESC` +
		b.Paginate(filters.Limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PostgresPropertiesRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, propertySelect+` WHERE p.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("property %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (r *PostgresPropertiesRepository) Update(ctx context.Context, id int64, patch domain.PropertyPatch) (*domain.Property, error) {
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
	if patch.Location.Set {
		b.Add("location", patch.Location.Value)
	}
	if patch.Price.Set {
		b.Add("price", patch.Price.Value)
	}
	if patch.PropertyType.Set {
		b.Add("property_type", patch.PropertyType.Value)
	}
	if patch.Status.Set {
		b.Add("status", patch.Status.Value)
	}
	if patch.Bedrooms.Set {
		b.Add("bedrooms", patch.Bedrooms.Value)
	}
	if patch.Bathrooms.Set {
		b.Add("bathrooms", patch.Bathrooms.Value)
	}
	if patch.Area.Set {
		b.Add("area", patch.Area.Value)
	}
	if patch.Features.Set {
		encoded, err := encodeStringList(patch.Features.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode features: %w", err)
		}
		b.Add("features", encoded)
	}
	if patch.Images.Set {
		encoded, err := encodeStringList(patch.Images.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode images: %w", err)
		}
		b.Add("images", encoded)
	}
	if patch.AgentID.Set {
		if patch.AgentID.Value != nil {
			b.Add("agent_id", *patch.AgentID.Value)
		} else {
			b.Add("agent_id", nil)
		}
	}

	query := fmt.Sprintf(
		`UPDATE properties SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d`,
		b.Clause(), b.NextArg(),
	)
	args := append(b.args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresPropertiesRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Search is the public listing search: available properties only, capped at
// 20, recency ordered. The OR group is parenthesized so the status predicate
// applies to every branch.
func (r *PostgresPropertiesRepository) Search(ctx context.Context, term string) ([]*domain.Property, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, fmt.Errorf("search term must be at least 2 characters: %w", ErrInvalidArgument)
	}

	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, propertySelect+`
		WHERE (p.title ILIKE $1 OR p.description ILIKE $2 OR p.location ILIKE $3 OR p.property_type ILIKE $4)
		  AND p.status = 'available'
		ORDER BY p.created_at DESC
		LIMIT 20
	`, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer rows.Close()

	properties := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PostgresPropertiesRepository) GetFeatured(ctx context.Context, limit int) ([]*domain.Property, error) {
	if limit <= 0 {
		limit = 6
	}

	rows, err := r.db.QueryContext(ctx, propertySelect+`
		WHERE p.status = 'available'
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	defer rows.Close()

	properties := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PostgresPropertiesRepository) GetStatistics(ctx context.Context) (*domain.PropertyStatistics, error) {
	var stats domain.PropertyStatistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_properties,
			COALESCE(SUM(CASE WHEN status = 'available' THEN 1 ELSE 0 END), 0) AS available_properties,
			COALESCE(SUM(CASE WHEN status = 'sold' THEN 1 ELSE 0 END), 0) AS sold_properties,
			COALESCE(SUM(CASE WHEN status = 'rented' THEN 1 ELSE 0 END), 0) AS rented_properties,
			AVG(price) AS average_price,
			MIN(price) AS min_price,
			MAX(price) AS max_price
		FROM properties
	`).Scan(
		&stats.TotalProperties,
		&stats.AvailableProperties,
		&stats.SoldProperties,
		&stats.RentedProperties,
		&stats.AveragePrice,
		&stats.MinPrice,
		&stats.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get property statistics: %w", err)
	}
	return &stats, nil
}
