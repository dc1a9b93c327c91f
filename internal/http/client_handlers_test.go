package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
	"dhulbeeg-backend/internal/repository"
)

// fakeClientsRepo hand-written fake; each func field defaults to a panic so
// a test only wires what it expects to be called.
type fakeClientsRepo struct {
	createFn   func(ctx context.Context, data domain.NewClient) (*domain.Client, error)
	findAllFn  func(ctx context.Context, filters repository.ClientFilters) ([]*domain.Client, error)
	findByIDFn func(ctx context.Context, id int64) (*domain.Client, error)
	updateFn   func(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error)
	deleteFn   func(ctx context.Context, id int64) (bool, error)
	searchFn   func(ctx context.Context, term string) ([]*domain.Client, error)
	addNoteFn  func(ctx context.Context, id int64, note string) (*domain.Client, error)
}

var _ repository.ClientsRepository = (*fakeClientsRepo)(nil)

func (f *fakeClientsRepo) Create(ctx context.Context, data domain.NewClient) (*domain.Client, error) {
	return f.createFn(ctx, data)
}
func (f *fakeClientsRepo) FindAll(ctx context.Context, filters repository.ClientFilters) ([]*domain.Client, error) {
	return f.findAllFn(ctx, filters)
}
func (f *fakeClientsRepo) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeClientsRepo) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	panic("unexpected FindByEmail")
}
func (f *fakeClientsRepo) Update(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
	return f.updateFn(ctx, id, patch)
}
func (f *fakeClientsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return f.deleteFn(ctx, id)
}
func (f *fakeClientsRepo) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	return f.searchFn(ctx, term)
}
func (f *fakeClientsRepo) GetByAgent(ctx context.Context, agentID int64) ([]*domain.Client, error) {
	panic("unexpected GetByAgent")
}
func (f *fakeClientsRepo) AddNote(ctx context.Context, id int64, note string) (*domain.Client, error) {
	return f.addNoteFn(ctx, id, note)
}
func (f *fakeClientsRepo) GetStatistics(ctx context.Context) (*domain.ClientStatistics, error) {
	panic("unexpected GetStatistics")
}

func sampleClient(id int64) *domain.Client {
	return &domain.Client{
		ID:         id,
		Name:       "Amina Yusuf",
		Email:      "amina@example.com",
		ClientType: "buyer",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestClientList_PassesQueryFilters(t *testing.T) {
	var got repository.ClientFilters
	repo := &fakeClientsRepo{
		findAllFn: func(ctx context.Context, filters repository.ClientFilters) ([]*domain.Client, error) {
			got = filters
			return []*domain.Client{sampleClient(1)}, nil
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/clients?client_type=buyer&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buyer", got.ClientType)
	assert.Equal(t, "5", got.Limit)
	assert.Equal(t, "10", got.Offset)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
}

func TestClientCreate_RequiresNameAndEmail(t *testing.T) {
	h := NewClientHandler(&fakeClientsRepo{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{"name":"Amina"}`))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

func TestClientCreate_ConflictMapsTo409(t *testing.T) {
	repo := &fakeClientsRepo{
		createFn: func(ctx context.Context, data domain.NewClient) (*domain.Client, error) {
			return nil, fmt.Errorf("client with email %s already exists: %w", data.Email, repository.ErrConflict)
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/clients",
		strings.NewReader(`{"name":"Amina","email":"amina@example.com"}`))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestClientGet_NotFoundMapsTo404(t *testing.T) {
	repo := &fakeClientsRepo{
		findByIDFn: func(ctx context.Context, id int64) (*domain.Client, error) {
			return nil, fmt.Errorf("client %d: %w", id, repository.ErrNotFound)
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/clients/42", nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientUpdate_ForwardsPresenceMarkers(t *testing.T) {
	var got domain.ClientPatch
	repo := &fakeClientsRepo{
		updateFn: func(ctx context.Context, id int64, patch domain.ClientPatch) (*domain.Client, error) {
			got = patch
			return sampleClient(id), nil
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/clients/1",
		strings.NewReader(`{"phone":"","assigned_to":null}`))
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Phone.Set)
	assert.Equal(t, "", got.Phone.Value)
	assert.True(t, got.AssignedTo.Set)
	assert.Nil(t, got.AssignedTo.Value)
	assert.False(t, got.Name.Set)
}

func TestClientDelete_MissingRowMapsTo404(t *testing.T) {
	repo := &fakeClientsRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/7", nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientSearch_InvalidArgumentMapsTo400(t *testing.T) {
	repo := &fakeClientsRepo{
		searchFn: func(ctx context.Context, term string) ([]*domain.Client, error) {
			return nil, fmt.Errorf("search term must be at least 2 characters: %w", repository.ErrInvalidArgument)
		},
	}
	h := NewClientHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/clients/search?q=a", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientAddNote_RequiresNote(t *testing.T) {
	h := NewClientHandler(&fakeClientsRepo{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/clients/1/notes", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientItem_InvalidID(t *testing.T) {
	h := NewClientHandler(&fakeClientsRepo{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/clients/abc", nil)
	rec := httptest.NewRecorder()
	h.Item(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
