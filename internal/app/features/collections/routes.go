// internal/app/features/collections/routes.go
package collections

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Collection routes (mounted at /collections).
// Collections are personal: every route operates only on the
// requester's own collections.
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/prompts", h.HandleAddPrompt)
	r.Delete("/{id}/prompts/{promptID}", h.HandleRemovePrompt)

	return r
}
