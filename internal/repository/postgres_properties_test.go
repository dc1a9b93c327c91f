package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhulbeeg-backend/internal/domain"
)

var propertyColumns = []string{
	"id", "title", "description", "location", "price", "property_type",
	"status", "bedrooms", "bathrooms", "area", "features", "images",
	"agent_id", "created_at", "updated_at",
	"agent_name", "agent_email", "agent_phone",
}

func propertyRow(id int64, features, images any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(propertyColumns).AddRow(
		id, "Seaside Villa", "Three bedroom villa", "Lido Beach", 350000.0, "villa",
		"available", 3, 2, 240.5, features, images,
		nil, now, now, nil, nil, nil,
	)
}

func setupMockPropertiesDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresPropertiesRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresPropertiesRepository(db)
}

func TestPropertiesCreate_EncodesListsAndReReads(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO properties`).
		WithArgs("Seaside Villa", "Three bedroom villa", "Lido Beach", 350000.0, "villa",
			"available", 3, 2, 240.5, `["pool","garden"]`, `[]`, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(propertyRow(1, `["pool","garden"]`, `[]`))

	property, err := repo.Create(context.Background(), domain.NewProperty{
		Title:        "Seaside Villa",
		Description:  "Three bedroom villa",
		Location:     "Lido Beach",
		Price:        350000,
		PropertyType: "villa",
		Bedrooms:     3,
		Bathrooms:    2,
		Area:         240.5,
		Features:     []string{"pool", "garden"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"pool", "garden"}, property.Features)
	assert.Equal(t, []string{}, property.Images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesFindByID_DecodesMissingListsAsEmpty(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(propertyRow(1, nil, "{malformed"))

	property, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{}, property.Features)
	assert.Equal(t, []string{}, property.Images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesFindAll_RangeFilters(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`p\.price >= \$1 AND p\.price <= \$2 AND p\.location ILIKE \$3 AND p\.bedrooms >= \$4`).
		WithArgs(100000.0, 500000.0, "%Lido%", int64(3)).
		WillReturnRows(sqlmock.NewRows(propertyColumns))

	_, err := repo.FindAll(context.Background(), PropertyFilters{
		MinPrice: "100000",
		MaxPrice: "500000",
		Location: "Lido",
		Bedrooms: "3",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesUpdate_SingleFieldTouchesOnlyThatColumn(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(propertyRow(5, `[]`, `[]`))
	mock.ExpectExec(`UPDATE properties SET price = \$1, updated_at = CURRENT_TIMESTAMP WHERE id = \$2`).
		WithArgs(300000.0, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(propertyRow(5, `[]`, `[]`))

	_, err := repo.Update(context.Background(), 5, domain.PropertyPatch{
		Price: domain.Some(300000.0),
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(propertyRow(5, `["pool"]`, `[]`))

	property, err := repo.Update(context.Background(), 5, domain.PropertyPatch{})

	require.NoError(t, err)
	assert.Equal(t, []string{"pool"}, property.Features)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesSearch_AvailableOnlyWithParenGroup(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`\(p\.title ILIKE \$1 OR p\.description ILIKE \$2 OR p\.location ILIKE \$3 OR p\.property_type ILIKE \$4\)\s+AND p\.status = 'available'`).
		WithArgs("%villa%", "%villa%", "%villa%", "%villa%").
		WillReturnRows(propertyRow(1, `[]`, `[]`))

	properties, err := repo.Search(context.Background(), "villa")

	require.NoError(t, err)
	assert.Len(t, properties, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesSearch_MinimumLength(t *testing.T) {
	db, _, repo := setupMockPropertiesDB(t)
	defer db.Close()

	_, err := repo.Search(context.Background(), "v")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPropertiesGetFeatured_DefaultLimit(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.status = 'available'`).
		WithArgs(6).
		WillReturnRows(propertyRow(1, `[]`, `[]`))

	properties, err := repo.GetFeatured(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, properties, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesGetStatistics_EmptyTableNullAggregates(t *testing.T) {
	db, mock, repo := setupMockPropertiesDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM properties`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_properties", "available_properties", "sold_properties",
			"rented_properties", "average_price", "min_price", "max_price",
		}).AddRow(0, 0, 0, 0, nil, nil, nil))

	stats, err := repo.GetStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalProperties)
	assert.False(t, stats.AveragePrice.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}
