// internal/app/features/prompts/edit.go
package prompts

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/htmlsanitize"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type editRequest struct {
	Title          string   `json:"title"`
	Text           string   `json:"text"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	PlatformCompat []string `json:"platform_compat"`
}

// HandleEdit handles PATCH /prompts/{id}. Visibility and team scoping
// are fixed at creation; only content fields are editable.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
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
	if !promptpolicy.CanManage(team, userID, prompt, promptpolicy.ActionEdit) {
		httpjson.Forbidden(w, "you cannot edit this prompt")
		return
	}

	var req editRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Prompts.Update(ctx, prompt.ID,
		htmlsanitize.Strip(req.Title), req.Text, htmlsanitize.Strip(req.Description),
		req.Tags, req.PlatformCompat)
	if err != nil {
		if err == promptstore.ErrTooManyTags {
			httpjson.ValidationFailed(w, map[string]string{"tags": "a prompt may have at most 10 tags"})
			return
		}
		h.Log.Error("prompts: update failed", zap.Error(err))
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

// HandleDelete handles DELETE /prompts/{id}.
//
// Team prompts require the delete-any capability even for their creator.
// Comments and collection references to the prompt are left in place.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
	if !promptpolicy.CanManage(team, userID, prompt, promptpolicy.ActionDelete) {
		httpjson.Forbidden(w, "you cannot delete this prompt")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Prompts.Delete(ctx, prompt.ID)
	if err != nil {
		h.Log.Error("prompts: delete failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "prompt")
		return
	}

	if err := h.Users.IncPromptCount(ctx, prompt.CreatorID, -1); err != nil {
		h.Log.Error("prompts: counter decrement failed",
			zap.String("user_id", prompt.CreatorID.Hex()), zap.Error(err))
	}

	h.AuditLog.PromptDeleted(ctx, userID, prompt.ID)

	httpjson.NoContent(w)
}
