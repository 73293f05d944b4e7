// internal/app/features/comments/list.go
package comments

import (
	"context"
	"net/http"
	"strconv"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList handles GET /prompts/{id}/comments. Anyone who can view
// the prompt can read its comments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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

	var limit int64
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.ParseInt(s, 10, 64)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Comments.ListByPrompt(ctx, prompt.ID, limit)
	if err != nil {
		h.Log.Error("comments: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, list)
}
