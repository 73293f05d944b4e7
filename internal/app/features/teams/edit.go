// internal/app/features/teams/edit.go
package teams

import (
	"context"
	"net/http"
	"strconv"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type editRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PromptLimit *int   `json:"prompt_limit"`
}

// HandleEdit handles PATCH /teams/{id} (name, description, and an
// optional prompt_limit override that takes precedence over the plan
// default).
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	if !teampolicy.HasCapability(team, userID, teampolicy.CapManageTeamSettings) {
		httpjson.Forbidden(w, "only team owners and admins can change team settings")
		return
	}

	var req editRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	if req.PromptLimit != nil && *req.PromptLimit < 1 {
		httpjson.ValidationFailed(w, map[string]string{"prompt_limit": "prompt_limit must be at least 1"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.UpdateInfo(ctx, team.ID, normalize.Name(req.Name), req.Description); err != nil {
		h.Log.Error("teams: update failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	details := map[string]string{}
	if req.PromptLimit != nil {
		if err := h.Teams.SetPromptLimit(ctx, team.ID, *req.PromptLimit); err != nil {
			h.Log.Error("teams: prompt limit update failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		details["prompt_limit"] = strconv.Itoa(*req.PromptLimit)
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionTeamUpdated,
		TargetType: audit.TargetTeam,
		TargetID:   team.ID,
		Details:    details,
	})

	updated, err := h.Teams.GetByID(ctx, team.ID)
	if err != nil {
		h.Log.Error("teams: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /teams/{id}. Only the owner may delete a
// team; admins manage it, the owner ends it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	role, member := teampolicy.ResolveRole(team, userID)
	if !member {
		httpjson.NotFound(w, "team")
		return
	}
	if role != teampolicy.Owner {
		httpjson.Forbidden(w, "only the team owner can delete the team")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Teams.Delete(ctx, team.ID); err != nil {
		h.Log.Error("teams: delete failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionTeamDeleted,
		TargetType: audit.TargetTeam,
		TargetID:   team.ID,
		Details:    map[string]string{"name": team.Name},
	})

	httpjson.NoContent(w)
}
