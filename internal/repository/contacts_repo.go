package repository

import (
	"context"

	"dhulbeeg-backend/internal/domain"
)

// ContactFilters optional findAll criteria. StartDate/EndDate are inclusive
// calendar-date bounds on created_at (YYYY-MM-DD).
type ContactFilters struct {
	Status     string
	Department string
	AssignedTo string
	StartDate  string
	EndDate    string
	Search     string
	Limit      string
	Offset     string
}

type ContactsRepository interface {
	Create(ctx context.Context, data domain.NewContact) (*domain.Contact, error)
	FindAll(ctx context.Context, filters ContactFilters) ([]*domain.Contact, error)
	FindByID(ctx context.Context, id int64) (*domain.Contact, error)
	UpdateStatus(ctx context.Context, id int64, update domain.ContactStatusUpdate) (*domain.Contact, error)
	AddNote(ctx context.Context, id int64, note string) (*domain.Contact, error)
	MarkAsSpam(ctx context.Context, id int64) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByDepartment(ctx context.Context, department string, limit int) ([]*domain.Contact, error)
	GetStatistics(ctx context.Context) ([]*domain.ContactDailyStats, error)
}
