// internal/app/features/analytics/stats.go
package analytics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type promptStatsResponse struct {
	PromptID string                   `json:"prompt_id"`
	Since    time.Time                `json:"since"`
	Counts   []usagestore.EventCounts `json:"counts"`
}

// ServePromptStats handles GET /analytics/prompts/{id}. Visible to
// anyone who can view the prompt itself.
func (h *Handler) ServePromptStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	promptID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "prompt")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	prompt, err := h.Prompts.GetByID(ctx, promptID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "prompt")
			return
		}
		h.Log.Error("analytics: prompt load failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	team, ok := h.promptTeam(ctx, prompt)
	if !ok {
		httpjson.Internal(w)
		return
	}
	if !promptpolicy.CanManage(team, userID, prompt, promptpolicy.ActionView) {
		httpjson.NotFound(w, "prompt")
		return
	}

	cutoff := since(r)
	counts, err := h.Usage.CountsByPrompt(ctx, prompt.ID, cutoff)
	if err != nil {
		h.Log.Error("analytics: prompt aggregation failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, promptStatsResponse{
		PromptID: prompt.ID.Hex(),
		Since:    cutoff,
		Counts:   counts,
	})
}

type teamStatsResponse struct {
	TeamID  string                      `json:"team_id"`
	Since   time.Time                   `json:"since"`
	Prompts []usagestore.PromptActivity `json:"prompts"`
}

// ServeTeamStats handles GET /analytics/teams/{id}, ranking the team's
// most-used prompts. Members only; outsiders get a 404.
func (h *Handler) ServeTeamStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r, chi.URLParam(r, "id"))
	if team == nil {
		return
	}
	if _, member := teampolicy.ResolveRole(team, userID); !member {
		httpjson.NotFound(w, "team")
		return
	}

	var limit int64
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.ParseInt(s, 10, 64)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cutoff := since(r)
	top, err := h.Usage.TopPromptsByTeam(ctx, team.ID, cutoff, limit)
	if err != nil {
		h.Log.Error("analytics: team aggregation failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, teamStatsResponse{
		TeamID:  team.ID.Hex(),
		Since:   cutoff,
		Prompts: top,
	})
}
