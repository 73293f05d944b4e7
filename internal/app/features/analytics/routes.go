// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the analytics routes (mounted at /analytics).
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/prompts/{id}", h.ServePromptStats)
	r.Get("/teams/{id}", h.ServeTeamStats)

	return r
}
