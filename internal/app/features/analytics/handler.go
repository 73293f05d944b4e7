// internal/app/features/analytics/handler.go

// Package analytics serves usage aggregations computed from the
// append-only usage_events log. The prompt counters are a convenience
// cache; these endpoints always go back to the log.
package analytics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// defaultWindowDays bounds the aggregation when the client does not
// ask for a specific number of days.
const defaultWindowDays = 30

// Handler is the feature-level entry point for Analytics.
type Handler struct {
	Usage   *usagestore.Store
	Prompts *promptstore.Store
	Teams   *teamstore.Store
	Log     *zap.Logger
}

// NewHandler constructs an Analytics handler.
func NewHandler(usage *usagestore.Store, prompts *promptstore.Store, teams *teamstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Usage:   usage,
		Prompts: prompts,
		Teams:   teams,
		Log:     logger,
	}
}

// since derives the aggregation cutoff from the optional ?days= query
// parameter.
func since(r *http.Request) time.Time {
	days := defaultWindowDays
	if s := r.URL.Query().Get("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			days = n
		}
	}
	return time.Now().UTC().AddDate(0, 0, -days)
}

// promptTeam fetches the team document for a team-visibility prompt.
// Non-team prompts and dangling references return (nil, true).
func (h *Handler) promptTeam(ctx context.Context, prompt *models.Prompt) (*models.Team, bool) {
	if prompt.Visibility != models.VisibilityTeam || prompt.TeamID == nil {
		return nil, true
	}

	tctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	team, err := h.Teams.GetByID(tctx, *prompt.TeamID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, true
		}
		h.Log.Error("analytics: team load failed", zap.Error(err))
		return nil, false
	}
	return team, true
}

// loadTeam parses {id} and fetches the team. Writes the error response
// itself and returns nil when the caller should stop.
func (h *Handler) loadTeam(w http.ResponseWriter, r *http.Request, id string) *models.Team {
	teamID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpjson.NotFound(w, "team")
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "team")
			return nil
		}
		h.Log.Error("analytics: team load failed", zap.Error(err))
		httpjson.Internal(w)
		return nil
	}
	return team
}
