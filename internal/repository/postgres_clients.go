package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dhulbeeg-backend/internal/domain"
)

// PostgresClientsRepository clients table access.
type PostgresClientsRepository struct {
	db *sql.DB
}

func NewPostgresClientsRepository(db *sql.DB) *PostgresClientsRepository {
	return &PostgresClientsRepository{db: db}
}

var _ ClientsRepository = (*PostgresClientsRepository)(nil)

const clientSelect = `
	SELECT
		c.id, c.name, c.email, c.phone, c.address, c.client_type, c.notes,
		c.assigned_to, c.created_at, c.updated_at,
		u.name AS assigned_agent_name,
		u.email AS assigned_agent_email,
		u.phone AS assigned_agent_phone
	FROM clients c
	LEFT JOIN users u ON c.assigned_to = u.id
`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.ClientType,
		&c.Notes,
		&c.AssignedTo,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.AssignedAgentName,
		&c.AssignedAgentEmail,
		&c.AssignedAgentPhone,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresClientsRepository) Create(ctx context.Context, data domain.NewClient) (*domain.Client, error) {
	// explicit existence lookup before insert; the unique constraint on
	// email is only the backstop for concurrent writers
	existing, err := r.FindByEmail(ctx, data.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("client with email %s already exists: %w", data.Email, ErrConflict)
	}

	var assignedTo any
	if data.AssignedTo != nil {
		assignedTo = *data.AssignedTo
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, email, phone, address, client_type, notes, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, data.Name, data.Email, data.Phone, data.Address, data.ClientType, data.Notes, assignedTo).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("client with email %s already exists: %w", data.Email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to insert client: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresClientsRepository) FindAll(ctx context.Context, filters ClientFilters) ([]*domain.Client, error) {
	b := newCondBuilder()
	if filters.ClientType != "" {
		b.Eq("c.client_type", filters.ClientType)
	}
	if filters.AssignedTo != "" {
		b.EqInt("c.assigned_to", filters.AssignedTo)
	}
	if filters.Search != "" {
		b.SearchGroup([]string{"c.name", "c.email", "c.phone"}, filters.Search)
	}

	query := clientSelect + ` WHERE 1=1` + b.Conds() +
		` ORDER BY c.created_at DESC` +
		b.Paginate(filters.Limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PostgresClientsRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, clientSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

func (r *PostgresClientsRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, clientSelect+` WHERE c.email = $1`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}
	return c, nil
}

func (r *PostgresClientsRepository) Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// email uniqueness re-check, excluding this row. Not atomic with the
	// write below; the unique constraint is the backstop.
	if patch.Email.Set && patch.Email.Value != current.Email {
		var existingID int64
		err := r.db.QueryRowContext(ctx,
			`SELECT id FROM clients WHERE email = $1 AND id != $2`,
			patch.Email.Value, id,
		).Scan(&existingID)
		if err == nil {
			return nil, fmt.Errorf("email %s already in use by another client: %w", patch.Email.Value, ErrConflict)
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
	}

	if patch.Empty() {
		return current, nil
	}

	b := newSetBuilder()
	if patch.Name.Set {
		b.Add("name", patch.Name.Value)
	}
	if patch.Email.Set {
		b.Add("email", patch.Email.Value)
	}
	if patch.Phone.Set {
		b.Add("phone", patch.Phone.Value)
	}
	if patch.Address.Set {
		b.Add("address", patch.Address.Value)
	}
	if patch.ClientType.Set {
		b.Add("client_type", patch.ClientType.Value)
	}
	if patch.Notes.Set {
		b.Add("notes", patch.Notes.Value)
	}
	if patch.AssignedTo.Set {
		if patch.AssignedTo.Value != nil {
			b.Add("assigned_to", *patch.AssignedTo.Value)
		} else {
			b.Add("assigned_to", nil)
		}
	}

	query := fmt.Sprintf(
		`UPDATE clients SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = $%d`,
		b.Clause(), b.NextArg(),
	)
	args := append(b.args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email already in use by another client: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresClientsRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PostgresClientsRepository) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, fmt.Errorf("search term must be at least 2 characters: %w", ErrInvalidArgument)
	}
	return r.FindAll(ctx, ClientFilters{Search: term})
}

func (r *PostgresClientsRepository) GetByAgent(ctx context.Context, agentID int64) ([]*domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.name, c.email, c.phone, c.address, c.client_type, c.notes,
			c.assigned_to, c.created_at, c.updated_at,
			COUNT(pi.id) AS total_inquiries
		FROM clients c
		LEFT JOIN property_inquiries pi ON c.id = pi.client_id
		WHERE c.assigned_to = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients by agent: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Address,
			&c.ClientType,
			&c.Notes,
			&c.AssignedTo,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.TotalInquiries,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

// AddNote appends a timestamped line to the client's notes text. The log is
// plain concatenated text, not a notes table; updated_at is left untouched.
func (r *PostgresClientsRepository) AddNote(ctx context.Context, id int64, note string) (*domain.Client, error) {
	client, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := time.Now().UTC().Format(time.RFC3339) + ": " + note
	updated := entry
	if client.Notes != "" {
		updated = client.Notes + "\n" + entry
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE clients SET notes = $1 WHERE id = $2`, updated, id,
	); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresClientsRepository) GetStatistics(ctx context.Context) (*domain.ClientStatistics, error) {
	var stats domain.ClientStatistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_clients,
			COUNT(DISTINCT client_type) AS client_types,
			COALESCE(SUM(CASE WHEN client_type = 'buyer' THEN 1 ELSE 0 END), 0) AS buyers,
			COALESCE(SUM(CASE WHEN client_type = 'seller' THEN 1 ELSE 0 END), 0) AS sellers,
			COALESCE(SUM(CASE WHEN client_type = 'investor' THEN 1 ELSE 0 END), 0) AS investors,
			COALESCE(SUM(CASE WHEN client_type = 'legal_client' THEN 1 ELSE 0 END), 0) AS legal_clients
		FROM clients
	`).Scan(
		&stats.TotalClients,
		&stats.ClientTypes,
		&stats.Buyers,
		&stats.Sellers,
		&stats.Investors,
		&stats.LegalClients,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client statistics: %w", err)
	}
	return &stats, nil
}
