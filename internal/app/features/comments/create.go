// internal/app/features/comments/create.go
package comments

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	commentstore "github.com/baudien321/promptpro/internal/app/store/comments"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/htmlsanitize"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Content string `json:"content"`
}

// HandleCreate handles POST /prompts/{id}/comments. Viewing a prompt is
// enough to comment on private and public ones; team prompts also
// require the comment capability from the role table.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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
	if prompt.Visibility == models.VisibilityTeam &&
		!teampolicy.HasCapability(team, userID, teampolicy.CapCommentOnPrompts) {
		httpjson.Forbidden(w, "You do not have permission to comment on this prompt")
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.Comments.Create(ctx, models.Comment{
		PromptID: prompt.ID,
		AuthorID: userID,
		Content:  htmlsanitize.Strip(req.Content),
	})
	if err != nil {
		switch err {
		case commentstore.ErrEmptyContent:
			httpjson.ValidationFailed(w, map[string]string{"content": "content is required"})
		case commentstore.ErrContentTooLong:
			httpjson.ValidationFailed(w, map[string]string{"content": "content is too long"})
		default:
			h.Log.Error("comments: create failed", zap.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	httpjson.Respond(w, http.StatusCreated, cm)
}
