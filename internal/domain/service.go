package domain

import "time"

// Service row from the services table. Features is persisted as JSON-encoded
// text, same as Property.Features.
type Service struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	ServiceType  string    `db:"service_type"`
	Category     string    `db:"category"`
	Duration     string    `db:"duration"`
	PriceRange   string    `db:"price_range"`
	Features     []string  `db:"features"`
	ContactEmail string    `db:"contact_email"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (s Service) ToJSON() map[string]any {
	return map[string]any{
		"id":            s.ID,
		"title":         s.Title,
		"description":   s.Description,
		"service_type":  s.ServiceType,
		"category":      s.Category,
		"duration":      s.Duration,
		"price_range":   s.PriceRange,
		"features":      s.Features,
		"contact_email": s.ContactEmail,
		"is_active":     s.IsActive,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

// NewService create payload. IsActive defaults to true when nil.
type NewService struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ServiceType  string   `json:"service_type"`
	Category     string   `json:"category"`
	Duration     string   `json:"duration"`
	PriceRange   string   `json:"price_range"`
	Features     []string `json:"features"`
	ContactEmail string   `json:"contact_email"`
	IsActive     *bool    `json:"is_active"`
}

// ServicePatch sparse update payload.
type ServicePatch struct {
	Title        Optional[string]   `json:"title"`
	Description  Optional[string]   `json:"description"`
	ServiceType  Optional[string]   `json:"service_type"`
	Category     Optional[string]   `json:"category"`
	Duration     Optional[string]   `json:"duration"`
	PriceRange   Optional[string]   `json:"price_range"`
	Features     Optional[[]string] `json:"features"`
	ContactEmail Optional[string]   `json:"contact_email"`
	IsActive     Optional[bool]     `json:"is_active"`
}

func (p ServicePatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.ServiceType.Set &&
		!p.Category.Set && !p.Duration.Set && !p.PriceRange.Set &&
		!p.Features.Set && !p.ContactEmail.Set && !p.IsActive.Set
}

// ServiceStatistics single aggregate row over the services table.
type ServiceStatistics struct {
	TotalServices        int64 `json:"total_services"`
	ActiveServices       int64 `json:"active_services"`
	RealEstateServices   int64 `json:"real_estate_services"`
	LegalServices        int64 `json:"legal_services"`
	ManagementServices   int64 `json:"management_services"`
	ConsultationServices int64 `json:"consultation_services"`
	TotalCategories      int64 `json:"total_categories"`
}
