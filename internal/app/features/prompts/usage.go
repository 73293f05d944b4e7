// internal/app/features/prompts/usage.go
package prompts

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

type usageRequest struct {
	EventType string `json:"event_type"`
}

// HandleUsage handles POST /prompts/{id}/usage.
//
// Two writes happen per event: an append to the usage_events log for
// analytics, and an $inc on the prompt's counters. Counter movement is
// all $inc, so concurrent events never lose updates.
func (h *Handler) HandleUsage(w http.ResponseWriter, r *http.Request) {
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

	var req usageRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if !models.ValidUsageEventType(req.EventType) {
		httpjson.ValidationFailed(w, map[string]string{
			"event_type": `event_type must be "copy", "use", "success", or "failure"`,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := h.Usage.Append(ctx, models.UsageEvent{
		PromptID:  prompt.ID,
		UserID:    userID,
		TeamID:    prompt.TeamID,
		EventType: req.EventType,
	})
	if err != nil {
		h.Log.Error("prompts: usage append failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Prompts.IncUsage(ctx, prompt.ID, req.EventType); err != nil {
		// The event log is the source of truth; a failed counter bump is
		// logged and the request still succeeds.
		h.Log.Error("prompts: usage counter failed",
			zap.String("prompt_id", prompt.ID.Hex()), zap.Error(err))
	}

	httpjson.Respond(w, http.StatusCreated, event)
}
