// internal/app/features/prompts/rate.go
package prompts

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type rateRequest struct {
	Value int `json:"value"`
}

// HandleRate handles POST /prompts/{id}/rate. One rating per user;
// re-rating replaces the previous value.
func (h *Handler) HandleRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	prompt := h.loadPrompt(w, r)
	if prompt == nil {
		return
	}

	team, ok := h.promptTeam(r.Context(), prompt)
	if !ok {
		httpjson.Internal(w)
		return
	}
	if !promptpolicy.CanManage(team, userID, prompt, promptpolicy.ActionView) {
		httpjson.NotFound(w, "prompt")
		return
	}

	var req rateRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Prompts.Rate(ctx, prompt.ID, userID, req.Value); err != nil {
		if err == promptstore.ErrBadRating {
			httpjson.ValidationFailed(w, map[string]string{"value": "rating must be between 1 and 5"})
			return
		}
		h.Log.Error("prompts: rate failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	updated, err := h.Prompts.GetByID(ctx, prompt.ID)
	if err != nil {
		h.Log.Error("prompts: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}
