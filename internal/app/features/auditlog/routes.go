// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit trail routes (mounted at /audit).
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)

	return r
}
