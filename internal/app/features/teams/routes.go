// internal/app/features/teams/routes.go
package teams

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Team routes (mounted at /teams). Every endpoint
// requires a signed-in user; per-team authorization happens in the
// handlers against the membership list.
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	r.Post("/{id}/members", h.HandleAddMember)
	r.Patch("/{id}/members/{userID}", h.HandleSetMemberRole)
	r.Delete("/{id}/members/{userID}", h.HandleRemoveMember)

	r.Get("/{id}/prompts", h.ServeTeamPrompts)

	return r
}
