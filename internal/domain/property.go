package domain

import (
	"database/sql"
	"time"
)

// Property statuses
const (
	PropertyStatusAvailable = "available"
	PropertyStatusSold      = "sold"
	PropertyStatusRented    = "rented"
)

// Property row from the properties table plus the agent join columns.
// Features and Images are persisted as JSON-encoded text and decoded on read;
// a missing or empty value decodes to an empty slice.
type Property struct {
	ID           int64         `db:"id"`
	Title        string        `db:"title"`
	Description  string        `db:"description"`
	Location     string        `db:"location"`
	Price        float64       `db:"price"`
	PropertyType string        `db:"property_type"`
	Status       string        `db:"status"`
	Bedrooms     int           `db:"bedrooms"`
	Bathrooms    int           `db:"bathrooms"`
	Area         float64       `db:"area"`
	Features     []string      `db:"features"`
	Images       []string      `db:"images"`
	AgentID      sql.NullInt64 `db:"agent_id"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`

	AgentName  sql.NullString `db:"agent_name"`
	AgentEmail sql.NullString `db:"agent_email"`
	AgentPhone sql.NullString `db:"agent_phone"`
}

func (p Property) ToJSON() map[string]any {
	m := map[string]any{
		"id":            p.ID,
		"title":         p.Title,
		"description":   p.Description,
		"location":      p.Location,
		"price":         p.Price,
		"property_type": p.PropertyType,
		"status":        p.Status,
		"bedrooms":      p.Bedrooms,
		"bathrooms":     p.Bathrooms,
		"area":          p.Area,
		"features":      p.Features,
		"images":        p.Images,
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
	if p.AgentID.Valid {
		m["agent_id"] = p.AgentID.Int64
	} else {
		m["agent_id"] = nil
	}
	if p.AgentName.Valid {
		m["agent_name"] = p.AgentName.String
	}
	if p.AgentEmail.Valid {
		m["agent_email"] = p.AgentEmail.String
	}
	if p.AgentPhone.Valid {
		m["agent_phone"] = p.AgentPhone.String
	}
	return m
}

// NewProperty create payload. Status defaults to "available".
type NewProperty struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Price        float64  `json:"price"`
	PropertyType string   `json:"property_type"`
	Status       string   `json:"status"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         float64  `json:"area"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
	AgentID      *int64   `json:"agent_id"`
}

// PropertyPatch sparse update payload.
type PropertyPatch struct {
	Title        Optional[string]   `json:"title"`
	Description  Optional[string]   `json:"description"`
	Location     Optional[string]   `json:"location"`
	Price        Optional[float64]  `json:"price"`
	PropertyType Optional[string]   `json:"property_type"`
	Status       Optional[string]   `json:"status"`
	Bedrooms     Optional[int]      `json:"bedrooms"`
	Bathrooms    Optional[int]      `json:"bathrooms"`
	Area         Optional[float64]  `json:"area"`
	Features     Optional[[]string] `json:"features"`
	Images       Optional[[]string] `json:"images"`
	AgentID      Optional[*int64]   `json:"agent_id"`
}

func (p PropertyPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Location.Set &&
		!p.Price.Set && !p.PropertyType.Set && !p.Status.Set &&
		!p.Bedrooms.Set && !p.Bathrooms.Set && !p.Area.Set &&
		!p.Features.Set && !p.Images.Set && !p.AgentID.Set
}

// PropertyStatistics single aggregate row over the properties table.
type PropertyStatistics struct {
	TotalProperties     int64           `json:"total_properties"`
	AvailableProperties int64           `json:"available_properties"`
	SoldProperties      int64           `json:"sold_properties"`
	RentedProperties    int64           `json:"rented_properties"`
	AveragePrice        sql.NullFloat64 `json:"-"`
	MinPrice            sql.NullFloat64 `json:"-"`
	MaxPrice            sql.NullFloat64 `json:"-"`
}

func (s PropertyStatistics) ToJSON() map[string]any {
	m := map[string]any{
		"total_properties":     s.TotalProperties,
		"available_properties": s.AvailableProperties,
		"sold_properties":      s.SoldProperties,
		"rented_properties":    s.RentedProperties,
	}
	if s.AveragePrice.Valid {
		m["average_price"] = s.AveragePrice.Float64
	}
	if s.MinPrice.Valid {
		m["min_price"] = s.MinPrice.Float64
	}
	if s.MaxPrice.Valid {
		m["max_price"] = s.MaxPrice.Float64
	}
	return m
}
