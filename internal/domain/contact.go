package domain

import (
	"database/sql"
	"time"
)

// Contact statuses. The rank drives the default list ordering: unhandled
// inquiries surface first, spam sinks last.
const (
	ContactStatusNew        = "new"
	ContactStatusContacted  = "contacted"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
	ContactStatusSpam       = "spam"
)

// ContactStatusRank fixed priority used as the primary sort key before
// recency. Unknown statuses sort after everything else.
var ContactStatusRank = map[string]int{
	ContactStatusNew:        1,
	ContactStatusInProgress: 2,
	ContactStatusContacted:  3,
	ContactStatusResolved:   4,
	ContactStatusSpam:       5,
}

// IsValidContactStatus reports whether s is an accepted status value for the
// normal status-update path. MarkAsSpam bypasses this check.
func IsValidContactStatus(s string) bool {
	_, ok := ContactStatusRank[s]
	return ok
}

// Contact row from the contacts table plus the assigned-user join columns.
type Contact struct {
	ID         int64         `db:"id"`
	Name       string        `db:"name"`
	Email      string        `db:"email"`
	Phone      string        `db:"phone"`
	Department string        `db:"department"`
	Subject    string        `db:"subject"`
	Message    string        `db:"message"`
	Status     string        `db:"status"`
	AssignedTo sql.NullInt64 `db:"assigned_to"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`

	AssignedToName  sql.NullString `db:"assigned_to_name"`
	AssignedToEmail sql.NullString `db:"assigned_to_email"`
	AssignedToPhone sql.NullString `db:"assigned_to_phone"`
}

func (c Contact) ToJSON() map[string]any {
	m := map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"phone":      c.Phone,
		"department": c.Department,
		"subject":    c.Subject,
		"message":    c.Message,
		"status":     c.Status,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
	if c.AssignedTo.Valid {
		m["assigned_to"] = c.AssignedTo.Int64
	} else {
		m["assigned_to"] = nil
	}
	if c.AssignedToName.Valid {
		m["assigned_to_name"] = c.AssignedToName.String
	}
	if c.AssignedToEmail.Valid {
		m["assigned_to_email"] = c.AssignedToEmail.String
	}
	if c.AssignedToPhone.Valid {
		m["assigned_to_phone"] = c.AssignedToPhone.String
	}
	return m
}

// NewContact create payload. Department defaults to "general", Status to
// "new" when left empty.
type NewContact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	AssignedTo *int64 `json:"assigned_to"`
}

// ContactStatusUpdate payload for the explicit status-transition operation.
// AssignedTo is written unconditionally: absent means the column is cleared.
// Notes, when non-empty, is appended through AddNote as a second, independent
// operation.
type ContactStatusUpdate struct {
	Status     string `json:"status"`
	AssignedTo *int64 `json:"assigned_to"`
	Notes      string `json:"notes"`
}

// ContactDailyStats one day of the 30-day histogram. The aggregate columns
// are computed per calendar date, matching the single mixed-grain statement
// this feeds from.
type ContactDailyStats struct {
	Date               time.Time `json:"date"`
	DailyCount         int64     `json:"daily_count"`
	TotalContacts      int64     `json:"total_contacts"`
	NewContacts        int64     `json:"new_contacts"`
	ContactedContacts  int64     `json:"contacted_contacts"`
	InProgressContacts int64     `json:"in_progress_contacts"`
	ResolvedContacts   int64     `json:"resolved_contacts"`
	RealEstateContacts int64     `json:"real_estate_contacts"`
	LegalContacts      int64     `json:"legal_contacts"`
	ManagementContacts int64     `json:"management_contacts"`
}
