package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
)

// PostgresContactsRepository contacts table access.
type PostgresContactsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresContactsRepository(db *sql.DB, logger *zap.Logger) *PostgresContactsRepository {
	return &PostgresContactsRepository{db: db, logger: logger}
}

var _ ContactsRepository = (*PostgresContactsRepository)(nil)

const contactSelect = `
	SELECT
		c.id, c.name, c.email, c.phone, c.department, c.subject, c.message,
		c.status, c.assigned_to, c.created_at, c.updated_at,
		u.name AS assigned_to_name,
		u.email AS assigned_to_email,
		u.phone AS assigned_to_phone
	FROM contacts c
	LEFT JOIN users u ON c.assigned_to = u.id
`

// contactStatusOrder unhandled inquiries first, spam last, recency breaks
// ties.
const contactStatusOrder = `
	ORDER BY
		CASE c.status
			WHEN 'new' THEN 1
			WHEN 'in_progress' THEN 2
			WHEN 'contacted' THEN 3
			WHEN 'resolved' THEN 4
			WHEN 'spam' THEN 5
			ELSE 6
		END,
		c.created_at DESC
`

func scanContact(row interface{ Scan(...any) error }) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Department,
		&c.Subject,
		&c.Message,
		&c.Status,
		&c.AssignedTo,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.AssignedToName,
		&c.AssignedToEmail,
		&c.AssignedToPhone,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresContactsRepository) Create(ctx context.Context, data domain.NewContact) (*domain.Contact, error) {
	if data.Department == "" {
		data.Department = "general"
	}
	if data.Status == "" {
		data.Status = domain.ContactStatusNew
	}

	var assignedTo any
	if data.AssignedTo != nil {
		assignedTo = *data.AssignedTo
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, phone, department, subject, message, status, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, data.Name, data.Email, data.Phone, data.Department, data.Subject, data.Message, data.Status, assignedTo).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresContactsRepository) FindAll(ctx context.Context, filters ContactFilters) ([]*domain.Contact, error) {
	b := newCondBuilder()
	if filters.Status != "" {
		b.Eq("c.status", filters.Status)
	}
	if filters.Department != "" {
		b.Eq("c.department", filters.Department)
	}
	if filters.AssignedTo != "" {
		b.EqInt("c.assigned_to", filters.AssignedTo)
	}
	if filters.StartDate != "" {
		b.GteDate("c.created_at::date", filters.StartDate)
	}
	if filters.EndDate != "" {
		b.LteDate("c.created_at::date", filters.EndDate)
	}
	if filters.Search != "" {
		b.SearchGroup([]string{"c.name", "c.email", "c.subject"}, filters.Search)
	}

	query := contactSelect + ` WHERE 1=1` + b.Conds() +
		contactStatusOrder +
		b.Paginate(filters.Limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PostgresContactsRepository) FindByID(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, contactSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// UpdateStatus transitions the inquiry and reassigns it in one statement.
// assigned_to is written unconditionally: a nil AssignedTo clears the column.
// The optional note goes through AddNote as a second, independent statement,
// not one transaction.
func (r *PostgresContactsRepository) UpdateStatus(ctx context.Context, id int64, update domain.ContactStatusUpdate) (*domain.Contact, error) {
	if !domain.IsValidContactStatus(update.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", update.Status, ErrInvalidArgument)
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	var assignedTo any
	if update.AssignedTo != nil {
		assignedTo = *update.AssignedTo
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET status = $1, assigned_to = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`, update.Status, assignedTo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}

	if update.Notes != "" {
		if _, err := r.AddNote(ctx, id, fmt.Sprintf("Status changed to %s: %s", update.Status, update.Notes)); err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

// AddNote is a stub kept for interface symmetry with the client notes log.
// Contacts have no notes column; the note is logged and the unchanged row
// returned. Callers (UpdateStatus) rely on getting the existing row back.
func (r *PostgresContactsRepository) AddNote(ctx context.Context, id int64, note string) (*domain.Contact, error) {
	contact, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.logger.Info("note recorded for contact",
		zap.Int64("contact_id", id),
		zap.String("note", note))
	return contact, nil
}

// MarkAsSpam is the administrative override: it skips status validation and
// leaves updated_at untouched.
func (r *PostgresContactsRepository) MarkAsSpam(ctx context.Context, id int64) (*domain.Contact, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET status = 'spam' WHERE id = $1`, id,
	); err != nil {
		return nil, fmt.Errorf("failed to mark contact as spam: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresContactsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PostgresContactsRepository) GetByDepartment(ctx context.Context, department string, limit int) ([]*domain.Contact, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, contactSelect+`
		WHERE c.department = $1
		ORDER BY
			CASE c.status
				WHEN 'new' THEN 1
				WHEN 'in_progress' THEN 2
				ELSE 3
			END,
			c.created_at DESC
		LIMIT $2
	`, department, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts by department: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetStatistics returns the last 30 days bucketed by calendar date. Every
// aggregate column is computed within its date bucket, so each row is a
// self-contained daily snapshot.
func (r *PostgresContactsRepository) GetStatistics(ctx context.Context) ([]*domain.ContactDailyStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			COUNT(*) AS total_contacts,
			COALESCE(SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END), 0) AS new_contacts,
			COALESCE(SUM(CASE WHEN status = 'contacted' THEN 1 ELSE 0 END), 0) AS contacted_contacts,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress_contacts,
			COALESCE(SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END), 0) AS resolved_contacts,
			COALESCE(SUM(CASE WHEN department = 'real_estate' THEN 1 ELSE 0 END), 0) AS real_estate_contacts,
			COALESCE(SUM(CASE WHEN department = 'legal' THEN 1 ELSE 0 END), 0) AS legal_contacts,
			COALESCE(SUM(CASE WHEN department = 'management' THEN 1 ELSE 0 END), 0) AS management_contacts,
			created_at::date AS date,
			COUNT(*) AS daily_count
		FROM contacts
		WHERE created_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY created_at::date
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact statistics: %w", err)
	}
	defer rows.Close()

	stats := []*domain.ContactDailyStats{}
	for rows.Next() {
		var s domain.ContactDailyStats
		if err := rows.Scan(
			&s.TotalContacts,
			&s.NewContacts,
			&s.ContactedContacts,
			&s.InProgressContacts,
			&s.ResolvedContacts,
			&s.RealEstateContacts,
			&s.LegalContacts,
			&s.ManagementContacts,
			&s.Date,
			&s.DailyCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact statistics: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
