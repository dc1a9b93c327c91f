package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
	"dhulbeeg-backend/internal/repository"
)

// ClientHandler client endpoints under /api/clients.
type ClientHandler struct {
	repo   repository.ClientsRepository
	logger *zap.Logger
}

func NewClientHandler(repo repository.ClientsRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{repo: repo, logger: logger}
}

func (h *ClientHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.ClientFilters{
		ClientType: q.Get("client_type"),
		AssignedTo: q.Get("assigned_to"),
		Search:     q.Get("search"),
		Limit:      q.Get("limit"),
		Offset:     q.Get("offset"),
	}

	clients, err := h.repo.FindAll(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(clients), clientsJSON(clients)))
}

func (h *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload domain.NewClient
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}
	if payload.Name == "" || payload.Email == "" {
		writeJSON(w, http.StatusBadRequest, fail("name and email are required"))
		return
	}

	client, err := h.repo.Create(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, okMessage("Client created successfully", client.ToJSON()))
}

func (h *ClientHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	clients, err := h.repo.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(clients), clientsJSON(clients)))
}

func (h *ClientHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.GetStatistics(r.Context())
	if err != nil {
		h.logger.Error("failed to get client statistics", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(stats))
}

func (h *ClientHandler) ByAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/clients/agent/")
	agentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || agentID <= 0 {
		writeJSON(w, http.StatusBadRequest, fail("invalid agent id"))
		return
	}

	clients, err := h.repo.GetByAgent(r.Context(), agentID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(clients), clientsJSON(clients)))
}

// Item dispatches /api/clients/{id} and /api/clients/{id}/notes.
func (h *ClientHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, tail, okID := pathID(r.URL.Path, "/api/clients/")
	if !okID {
		writeJSON(w, http.StatusBadRequest, fail("invalid client id"))
		return
	}

	if tail == "/notes" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.addNote(w, r, id)
		return
	}
	if tail != "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ClientHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	client, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(client.ToJSON()))
}

func (h *ClientHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var patch domain.ClientPatch
	if err := readBodyJSON(r, 1<<20, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}

	client, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		h.logger.Error("failed to update client", zap.Int64("client_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Client updated successfully", client.ToJSON()))
}

func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete client", zap.Int64("client_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, fail("client not found"))
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Client deleted successfully", nil))
}

func (h *ClientHandler) addNote(w http.ResponseWriter, r *http.Request, id int64) {
	var payload struct {
		Note string `json:"note"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil || strings.TrimSpace(payload.Note) == "" {
		writeJSON(w, http.StatusBadRequest, fail("note is required"))
		return
	}

	client, err := h.repo.AddNote(r.Context(), id, payload.Note)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Note added successfully", client.ToJSON()))
}

func clientsJSON(clients []*domain.Client) []map[string]any {
	out := make([]map[string]any, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.ToJSON())
	}
	return out
}
