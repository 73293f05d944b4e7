// internal/app/features/prompts/handler.go
package prompts

import (
	"context"
	"net/http"

	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Prompts.
type Handler struct {
	Prompts  *promptstore.Store
	Teams    *teamstore.Store
	Users    *userstore.Store
	Usage    *usagestore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a Prompts handler.
func NewHandler(prompts *promptstore.Store, teams *teamstore.Store, users *userstore.Store, usage *usagestore.Store, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Prompts:  prompts,
		Teams:    teams,
		Users:    users,
		Usage:    usage,
		AuditLog: al,
		Log:      logger,
	}
}

// loadPrompt parses {id} and fetches the prompt, writing the error
// response itself on failure.
func (h *Handler) loadPrompt(w http.ResponseWriter, r *http.Request) *models.Prompt {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "prompt")
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	prompt, err := h.Prompts.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "prompt")
			return nil
		}
		h.Log.Error("prompts: load failed", zap.Error(err))
		httpjson.Internal(w)
		return nil
	}
	return prompt
}

// promptTeam fetches the team document for a team-visibility prompt.
// Non-team prompts return (nil, true). A dangling team reference denies
// rather than errors: the policy layer treats nil as "no access".
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
		h.Log.Error("prompts: team load failed", zap.Error(err))
		return nil, false
	}
	return team, true
}
