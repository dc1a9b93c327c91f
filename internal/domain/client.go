package domain

import (
	"database/sql"
	"time"
)

// Client types
const (
	ClientTypeBuyer       = "buyer"
	ClientTypeSeller      = "seller"
	ClientTypeInvestor    = "investor"
	ClientTypeLegalClient = "legal_client"
)

// Client row from the clients table plus the assigned-agent join columns.
// Notes is an append-only log of timestamped lines, never structured.
type Client struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Phone      string         `db:"phone"`
	Address    string         `db:"address"`
	ClientType string         `db:"client_type"`
	Notes      string         `db:"notes"`
	AssignedTo sql.NullInt64  `db:"assigned_to"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`

	// read-only join columns (users table)
	AssignedAgentName  sql.NullString `db:"assigned_agent_name"`
	AssignedAgentEmail sql.NullString `db:"assigned_agent_email"`
	AssignedAgentPhone sql.NullString `db:"assigned_agent_phone"`

	// populated by GetByAgent only
	TotalInquiries sql.NullInt64 `db:"total_inquiries"`
}

func (c Client) ToJSON() map[string]any {
	m := map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"email":       c.Email,
		"phone":       c.Phone,
		"address":     c.Address,
		"client_type": c.ClientType,
		"notes":       c.Notes,
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}
	if c.AssignedTo.Valid {
		m["assigned_to"] = c.AssignedTo.Int64
	} else {
		m["assigned_to"] = nil
	}
	if c.AssignedAgentName.Valid {
		m["assigned_agent_name"] = c.AssignedAgentName.String
	}
	if c.AssignedAgentEmail.Valid {
		m["assigned_agent_email"] = c.AssignedAgentEmail.String
	}
	if c.AssignedAgentPhone.Valid {
		m["assigned_agent_phone"] = c.AssignedAgentPhone.String
	}
	if c.TotalInquiries.Valid {
		m["total_inquiries"] = c.TotalInquiries.Int64
	}
	return m
}

// NewClient create payload. Notes defaults to empty, AssignedTo to NULL.
type NewClient struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ClientType string `json:"client_type"`
	Notes      string `json:"notes"`
	AssignedTo *int64 `json:"assigned_to"`
}

// ClientPatch sparse update payload. Only fields whose key was present in the
// request are written; a present-but-null AssignedTo clears the column.
type ClientPatch struct {
	Name       Optional[string] `json:"name"`
	Email      Optional[string] `json:"email"`
	Phone      Optional[string] `json:"phone"`
	Address    Optional[string] `json:"address"`
	ClientType Optional[string] `json:"client_type"`
	Notes      Optional[string] `json:"notes"`
	AssignedTo Optional[*int64] `json:"assigned_to"`
}

// Empty reports whether the patch carries no fields at all.
func (p ClientPatch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Phone.Set && !p.Address.Set &&
		!p.ClientType.Set && !p.Notes.Set && !p.AssignedTo.Set
}

// ClientStatistics single aggregate row over the clients table.
type ClientStatistics struct {
	TotalClients int64 `json:"total_clients"`
	ClientTypes  int64 `json:"client_types"`
	Buyers       int64 `json:"buyers"`
	Sellers      int64 `json:"sellers"`
	Investors    int64 `json:"investors"`
	LegalClients int64 `json:"legal_clients"`
}
