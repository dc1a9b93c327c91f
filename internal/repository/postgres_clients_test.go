package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dhulbeeg-backend/internal/domain"
)

var clientColumns = []string{
	"id", "name", "email", "phone", "address", "client_type", "notes",
	"assigned_to", "created_at", "updated_at",
	"assigned_agent_name", "assigned_agent_email", "assigned_agent_phone",
}

func clientRow(id int64, email, notes string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(clientColumns).AddRow(
		id, "Amina Yusuf", email, "252615551234", "Mogadishu", "buyer", notes,
		nil, now, now, nil, nil, nil,
	)
}

func setupMockClientsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresClientsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresClientsRepository(db)
}

func TestClientsFindAll_NoFiltersHasNoLimit(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY c\.created_at DESC\s*$`).
		WillReturnRows(clientRow(1, "amina@example.com", ""))

	clients, err := repo.FindAll(context.Background(), ClientFilters{})

	require.NoError(t, err)
	assert.Len(t, clients, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsFindAll_LimitAndOffsetBound(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(clientColumns))

	clients, err := repo.FindAll(context.Background(), ClientFilters{Limit: "5", Offset: "10"})

	require.NoError(t, err)
	assert.Empty(t, clients)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsFindAll_OffsetWithoutLimitDropped(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY c\.created_at DESC\s*$`).
		WillReturnRows(sqlmock.NewRows(clientColumns))

	_, err := repo.FindAll(context.Background(), ClientFilters{Offset: "10"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsFindAll_SearchBindsThreeSlots(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`c\.name ILIKE \$1 OR c\.email ILIKE \$2 OR c\.phone ILIKE \$3`).
		WithArgs("%ali%", "%ali%", "%ali%").
		WillReturnRows(sqlmock.NewRows(clientColumns))

	_, err := repo.FindAll(context.Background(), ClientFilters{Search: "ali"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsFindByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	client, err := repo.FindByID(context.Background(), 99)

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsCreate_DuplicateEmailConflict(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.email = \$1`).
		WithArgs("amina@example.com").
		WillReturnRows(clientRow(1, "amina@example.com", ""))

	client, err := repo.Create(context.Background(), domain.NewClient{
		Name:  "Amina Yusuf",
		Email: "amina@example.com",
	})

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsUpdate_EmptyPatchIssuesNoWrite(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))

	client, err := repo.Update(context.Background(), 1, domain.ClientPatch{})

	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", client.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsUpdate_EmailTakenByOtherClient(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))
	mock.ExpectQuery(`SELECT id FROM clients WHERE email = \$1 AND id != \$2`).
		WithArgs("taken@example.com", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

	client, err := repo.Update(context.Background(), 1, domain.ClientPatch{
		Email: domain.Some("taken@example.com"),
	})

	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsUpdate_OwnEmailSkipsUniquenessCheck(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))
	mock.ExpectExec(`UPDATE clients SET email = \$1, updated_at = CURRENT_TIMESTAMP WHERE id = \$2`).
		WithArgs("amina@example.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))

	client, err := repo.Update(context.Background(), 1, domain.ClientPatch{
		Email: domain.Some("amina@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", client.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsUpdate_PresentNullClearsAssignedTo(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))
	mock.ExpectExec(`UPDATE clients SET assigned_to = \$1, updated_at = CURRENT_TIMESTAMP WHERE id = \$2`).
		WithArgs(nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", ""))

	_, err := repo.Update(context.Background(), 1, domain.ClientPatch{
		AssignedTo: domain.Some[*int64](nil),
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// noteArg matches the appended notes blob without pinning the timestamp.
type noteArg struct {
	prefix string
	suffix string
}

func (a noteArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, a.prefix) && strings.HasSuffix(s, a.suffix)
}

func TestClientsAddNote_AppendsTimestampedLine(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", "first contact"))
	mock.ExpectExec(`UPDATE clients SET notes = \$1 WHERE id = \$2`).
		WithArgs(noteArg{prefix: "first contact\n", suffix: ": prefers waterfront"}, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(clientRow(1, "amina@example.com", "first contact\n2025-01-02T10:00:00Z: prefers waterfront"))

	client, err := repo.AddNote(context.Background(), 1, "prefers waterfront")

	require.NoError(t, err)
	assert.Contains(t, client.Notes, "prefers waterfront")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsSearch_MinimumLength(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	_, err := repo.Search(context.Background(), "a")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = repo.Search(context.Background(), "  a  ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	mock.ExpectQuery(`ILIKE`).
		WithArgs("%ab%", "%ab%", "%ab%").
		WillReturnRows(sqlmock.NewRows(clientColumns))

	_, err = repo.Search(context.Background(), "ab")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsDelete_ReportsExistence(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM clients WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientsGetStatistics(t *testing.T) {
	db, mock, repo := setupMockClientsDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM clients`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_clients", "client_types", "buyers", "sellers", "investors", "legal_clients",
		}).AddRow(10, 3, 4, 3, 2, 1))

	stats, err := repo.GetStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalClients)
	assert.Equal(t, int64(4), stats.Buyers)
	assert.Equal(t, int64(1), stats.LegalClients)
	require.NoError(t, mock.ExpectationsWereMet())
}
