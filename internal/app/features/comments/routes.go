// internal/app/features/comments/routes.go
package comments

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the comment-ID routes (mounted at /comments). Listing
// and creating happen on the prompt routes, which carry the prompt ID.
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Delete("/{id}", h.HandleDelete)

	return r
}
