package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
	"dhulbeeg-backend/internal/repository"
)

// ContactHandler contact-inquiry endpoints under /api/contacts. Creation is
// the public website form; everything else is staff-facing.
type ContactHandler struct {
	repo   repository.ContactsRepository
	logger *zap.Logger
}

func NewContactHandler(repo repository.ContactsRepository, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{repo: repo, logger: logger}
}

func (h *ContactHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.ContactFilters{
		Status:     q.Get("status"),
		Department: q.Get("department"),
		AssignedTo: q.Get("assigned_to"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Search:     q.Get("search"),
		Limit:      q.Get("limit"),
		Offset:     q.Get("offset"),
	}

	contacts, err := h.repo.FindAll(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list contacts", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(contacts), contactsJSON(contacts)))
}

func (h *ContactHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload domain.NewContact
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		writeJSON(w, http.StatusBadRequest, fail("name, email and message are required"))
		return
	}

	contact, err := h.repo.Create(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to create contact", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, okMessage("Contact inquiry submitted successfully", contact.ToJSON()))
}

func (h *ContactHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.GetStatistics(r.Context())
	if err != nil {
		h.logger.Error("failed to get contact statistics", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(stats), stats))
}

func (h *ContactHandler) ByDepartment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	department := strings.TrimPrefix(r.URL.Path, "/api/contacts/department/")
	if department == "" || strings.Contains(department, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), 50)
	contacts, err := h.repo.GetByDepartment(r.Context(), department, limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(contacts), contactsJSON(contacts)))
}

// Item dispatches /api/contacts/{id}, /api/contacts/{id}/status and
// /api/contacts/{id}/spam.
func (h *ContactHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, tail, okID := pathID(r.URL.Path, "/api/contacts/")
	if !okID {
		writeJSON(w, http.StatusBadRequest, fail("invalid contact id"))
		return
	}

	switch tail {
	case "/status":
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.updateStatus(w, r, id)
	case "/spam":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.markAsSpam(w, r, id)
	case "":
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ContactHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	contact, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(contact.ToJSON()))
}

func (h *ContactHandler) updateStatus(w http.ResponseWriter, r *http.Request, id int64) {
	var payload domain.ContactStatusUpdate
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}

	contact, err := h.repo.UpdateStatus(r.Context(), id, payload)
	if err != nil {
		h.logger.Error("failed to update contact status",
			zap.Int64("contact_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Contact status updated successfully", contact.ToJSON()))
}

func (h *ContactHandler) markAsSpam(w http.ResponseWriter, r *http.Request, id int64) {
	contact, err := h.repo.MarkAsSpam(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Contact marked as spam", contact.ToJSON()))
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete contact", zap.Int64("contact_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, fail("contact not found"))
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Contact deleted successfully", nil))
}

func contactsJSON(contacts []*domain.Contact) []map[string]any {
	out := make([]map[string]any, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.ToJSON())
	}
	return out
}
