package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/domain"
	"dhulbeeg-backend/internal/repository"
)

// PropertyHandler property listing endpoints under /api/properties. Reads
// serve the public website; writes are staff-facing.
type PropertyHandler struct {
	repo   repository.PropertiesRepository
	logger *zap.Logger
}

func NewPropertyHandler(repo repository.PropertiesRepository, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{repo: repo, logger: logger}
}

func (h *PropertyHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *PropertyHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.PropertyFilters{
		PropertyType: q.Get("property_type"),
		Status:       q.Get("status"),
		MinPrice:     q.Get("min_price"),
		MaxPrice:     q.Get("max_price"),
		Location:     q.Get("location"),
		Bedrooms:     q.Get("bedrooms"),
		Limit:        q.Get("limit"),
		Offset:       q.Get("offset"),
	}

	properties, err := h.repo.FindAll(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list properties", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(properties), propertiesJSON(properties)))
}

func (h *PropertyHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload domain.NewProperty
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}
	if payload.Title == "" || payload.Location == "" {
		writeJSON(w, http.StatusBadRequest, fail("title and location are required"))
		return
	}
	if payload.Price < 0 {
		writeJSON(w, http.StatusBadRequest, fail("price must not be negative"))
		return
	}

	property, err := h.repo.Create(r.Context(), payload)
	if err != nil {
		h.logger.Error("failed to create property", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, okMessage("Property created successfully", property.ToJSON()))
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	properties, err := h.repo.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(properties), propertiesJSON(properties)))
}

func (h *PropertyHandler) Featured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 6)
	properties, err := h.repo.GetFeatured(r.Context(), limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okList(len(properties), propertiesJSON(properties)))
}

func (h *PropertyHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.GetStatistics(r.Context())
	if err != nil {
		h.logger.Error("failed to get property statistics", zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(stats.ToJSON()))
}

func (h *PropertyHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, tail, okID := pathID(r.URL.Path, "/api/properties/")
	if !okID || tail != "" {
		writeJSON(w, http.StatusBadRequest, fail("invalid property id"))
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

func (h *PropertyHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	property, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ok(property.ToJSON()))
}

func (h *PropertyHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var patch domain.PropertyPatch
	if err := readBodyJSON(r, 1<<20, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, fail("invalid request body"))
		return
	}

	property, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		h.logger.Error("failed to update property", zap.Int64("property_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Property updated successfully", property.ToJSON()))
}

func (h *PropertyHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete property", zap.Int64("property_id", id), zap.Error(err))
		writeRepoError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, fail("property not found"))
		return
	}
	writeJSON(w, http.StatusOK, okMessage("Property deleted successfully", nil))
}

func propertiesJSON(properties []*domain.Property) []map[string]any {
	out := make([]map[string]any, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.ToJSON())
	}
	return out
}
