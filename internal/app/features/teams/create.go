// internal/app/features/teams/create.go
package teams

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/store/audit"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate handles POST /teams. The requester becomes the team's
// sole owner on the free plan.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if normalize.Name(req.Name) == "" {
		httpjson.ValidationFailed(w, map[string]string{"name": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Teams.Create(ctx, models.Team{
		Name:        normalize.Name(req.Name),
		Description: req.Description,
		CreatorID:   userID,
	})
	if err != nil {
		h.Log.Error("teams: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionTeamCreated,
		TargetType: audit.TargetTeam,
		TargetID:   team.ID,
		Details:    map[string]string{"name": team.Name},
	})

	httpjson.Respond(w, http.StatusCreated, team)
}
