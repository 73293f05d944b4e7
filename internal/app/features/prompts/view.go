// internal/app/features/prompts/view.go
package prompts

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /prompts.
//
// With ?q= it runs a text search over public prompts plus the
// requester's own; with ?public=true it lists public prompts; otherwise
// it lists the requester's own prompts, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		prompts []models.Prompt
		err     error
	)
	switch {
	case strings.TrimSpace(r.URL.Query().Get("q")) != "":
		prompts, err = h.Prompts.Search(ctx, userID, strings.TrimSpace(r.URL.Query().Get("q")), limit)
	case r.URL.Query().Get("public") == "true":
		prompts, err = h.Prompts.ListPublic(ctx, limit)
	default:
		prompts, err = h.Prompts.ListByCreator(ctx, userID, limit)
	}
	if err != nil {
		h.Log.Error("prompts: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, prompts)
}

// ServeView handles GET /prompts/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
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
	httpjson.Respond(w, http.StatusOK, prompt)
}
