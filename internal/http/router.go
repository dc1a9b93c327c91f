package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router standard-library http.ServeMux with method dispatch inside the
// handlers.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) RegisterClientRoutes(h *ClientHandler) {
	r.Handle("/api/clients", h.Collection)
	r.Handle("/api/clients/search", h.Search)
	r.Handle("/api/clients/statistics", h.Statistics)
	r.Handle("/api/clients/agent/", h.ByAgent)
	r.Handle("/api/clients/", h.Item)
}

func (r *Router) RegisterContactRoutes(h *ContactHandler) {
	r.Handle("/api/contacts", h.Collection)
	r.Handle("/api/contacts/statistics", h.Statistics)
	r.Handle("/api/contacts/department/", h.ByDepartment)
	r.Handle("/api/contacts/", h.Item)
}

func (r *Router) RegisterPropertyRoutes(h *PropertyHandler) {
	r.Handle("/api/properties", h.Collection)
	r.Handle("/api/properties/search", h.Search)
	r.Handle("/api/properties/featured", h.Featured)
	r.Handle("/api/properties/statistics", h.Statistics)
	r.Handle("/api/properties/", h.Item)
}

func (r *Router) RegisterServiceRoutes(h *ServiceHandler) {
	r.Handle("/api/services", h.Collection)
	r.Handle("/api/services/search", h.Search)
	r.Handle("/api/services/statistics", h.Statistics)
	r.Handle("/api/services/type/", h.ByType)
	r.Handle("/api/services/category/", h.ByCategory)
	r.Handle("/api/services/", h.Item)
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/auth/register", h.Register)
	r.Handle("/api/auth/login", h.Login)
	r.Handle("/api/auth/me", h.Profile)
	r.Handle("/api/auth/logout", h.Logout)
}

func (r *Router) RegisterExportRoutes(h *ExportHandler) {
	r.Handle("/api/admin/export/properties", h.Properties)
	r.Handle("/api/admin/export/clients", h.Clients)
}

// RegisterHealthRoute liveness probe.
func (r *Router) RegisterHealthRoute() {
	r.Handle("/health", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, okMessage("ok", nil))
	})
}
