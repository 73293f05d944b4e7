// internal/app/features/prompts/routes.go
package prompts

import (
	"github.com/baudien321/promptpro/internal/app/features/comments"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Prompt routes (mounted at /prompts). The
// prompt-scoped comment routes live here too because they share the
// /prompts/{id} prefix.
func Routes(h *Handler, ch *comments.Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/rate", h.HandleRate)
	r.Post("/{id}/usage", h.HandleUsage)

	r.Get("/{id}/comments", ch.ServeList)
	r.Post("/{id}/comments", ch.HandleCreate)

	return r
}
