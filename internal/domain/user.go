package domain

import (
	"database/sql"
	"time"
)

// User roles
const (
	UserRoleAdmin  = "admin"
	UserRoleUser   = "user"
	UserRoleAgent  = "agent"
	UserRoleLawyer = "lawyer"
)

// User directory entry. The four core entities only ever join against
// id/name/email/phone for display; PasswordHash is used by the auth
// endpoints and never serialized.
type User struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password"`
	Name         string         `db:"name"`
	Phone        sql.NullString `db:"phone"`
	Role         string         `db:"role"`
	Department   string         `db:"department"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (u User) ToJSON() map[string]any {
	m := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"department": u.Department,
		"created_at": u.CreatedAt,
	}
	if u.Phone.Valid {
		m["phone"] = u.Phone.String
	}
	return m
}
