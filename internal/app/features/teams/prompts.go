// internal/app/features/teams/prompts.go
package teams

import (
	"context"
	"net/http"
	"strconv"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeTeamPrompts handles GET /teams/{id}/prompts.
func (h *Handler) ServeTeamPrompts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	if !teampolicy.HasCapability(team, userID, teampolicy.CapViewTeamPrompts) {
		httpjson.NotFound(w, "team")
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	prompts, err := h.Prompts.ListByTeam(ctx, team.ID, limit)
	if err != nil {
		h.Log.Error("teams: list prompts failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, prompts)
}
