package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dhulbeeg-backend/internal/repository"
)

// ExportHandler admin xlsx downloads under /api/admin/export. Requires a
// valid session; the full unpaginated table is exported.
type ExportHandler struct {
	clients    repository.ClientsRepository
	properties repository.PropertiesRepository
	auth       *AuthHandler
	logger     *zap.Logger
}

func NewExportHandler(
	clients repository.ClientsRepository,
	properties repository.PropertiesRepository,
	auth *AuthHandler,
	logger *zap.Logger,
) *ExportHandler {
	return &ExportHandler{clients: clients, properties: properties, auth: auth, logger: logger}
}

func (h *ExportHandler) Properties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, okToken := h.auth.authenticate(w, r); !okToken {
		return
	}

	properties, err := h.properties.FindAll(r.Context(), repository.PropertyFilters{})
	if err != nil {
		h.logger.Error("failed to load properties for export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	data, err := GeneratePropertyExport(properties)
	if err != nil {
		h.logger.Error("failed to generate property export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	writeWorkbook(w, "properties", data)
}

func (h *ExportHandler) Clients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, okToken := h.auth.authenticate(w, r); !okToken {
		return
	}

	clients, err := h.clients.FindAll(r.Context(), repository.ClientFilters{})
	if err != nil {
		h.logger.Error("failed to load clients for export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	data, err := GenerateClientExport(clients)
	if err != nil {
		h.logger.Error("failed to generate client export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail("internal server error"))
		return
	}

	writeWorkbook(w, "clients", data)
}

func writeWorkbook(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
