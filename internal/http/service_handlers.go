package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
	"dhulbeeg-backend/internal/repository"
)

// ServiceHandler service catalog endpoints under /api/services.
type ServiceHandler struct {
	repo   repository.ServicesRepository
	logger *zap.Logger
}

func NewServiceHandler(repo repository.ServicesRepository, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, logger: logger}
}

func (h *ServiceHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ServiceHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.ServiceFilters{
		ServiceType: q.Get("service_type"),
		Category:    q.Get("category"),
		IsActive:    q.Get("is_active"),
		Limit:       q.Get("limit"),
		Offset:      q.Get("offset"),
	}

	services, err := h.repo.FindAll(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(services), servicesJSON(services)))
}

func (h *ServiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload domain.NewService
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}
	if payload.Title == "" || payload.ServiceType == "" {
		writeJSON(w, http.StatusBadRequest, fail("title and service_type are required"))
		return
	}

	service, err := h.repo.Create(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to create service", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, okMessage("Service created successfully", service.ToJSON()))
}

func (h *ServiceHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	services, err := h.repo.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(services), servicesJSON(services)))
}

func (h *ServiceHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.GetStatistics(r.Context())
	if err != nil {
		h.logger.Error("failed to get service statistics", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(stats))
}

func (h *ServiceHandler) ByType(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	serviceType := strings.TrimPrefix(r.URL.Path, "/api/services/type/")
	if serviceType == "" || strings.Contains(serviceType, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	services, err := h.repo.FindByType(r.Context(), serviceType)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(services), servicesJSON(services)))
}

func (h *ServiceHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	category := strings.TrimPrefix(r.URL.Path, "/api/services/category/")
	if category == "" || strings.Contains(category, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	services, err := h.repo.GetByCategory(r.Context(), category)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(services), servicesJSON(services)))
}

// Item dispatches /api/services/{id} and /api/services/{id}/toggle.
func (h *ServiceHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, tail, okID := pathID(r.URL.Path, "/api/services/")
	if !okID {
		writeJSON(w, http.StatusBadRequest, fail("invalid service id"))
		return
	}

	if tail == "/toggle" {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.toggle(w, r, id)
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

func (h *ServiceHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	service, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(service.ToJSON()))
}

func (h *ServiceHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var patch domain.ServicePatch
	if err := readBodyJSON(r, 1<<20, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}

	service, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		h.logger.Error("failed to update service", zap.Int64("service_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Service updated successfully", service.ToJSON()))
}

func (h *ServiceHandler) toggle(w http.ResponseWriter, r *http.Request, id int64) {
	service, err := h.repo.ToggleActive(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Service status toggled", service.ToJSON()))
}

func (h *ServiceHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete service", zap.Int64("service_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, fail("service not found"))
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Service deleted successfully", nil))
}

func servicesJSON(services []*domain.Service) []map[string]any {
	out := make([]map[string]any, 0, len(services))
	for _, s := range services {
		out = append(out, s.ToJSON())
	}
	return out
}
