// internal/app/features/teams/list.go
package teams

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList handles GET /teams, returning the requester's teams.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := h.Teams.ListForUser(ctx, userID)
	if err != nil {
		h.Log.Error("teams: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, teams)
}

// ServeView handles GET /teams/{id}. Members only; the membership list
// is part of the document, so non-members get a 404 rather than a
// confirmation that the team exists.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	if _, member := teampolicy.ResolveRole(team, userID); !member {
		httpjson.NotFound(w, "team")
		return
	}
	httpjson.Respond(w, http.StatusOK, team)
}
