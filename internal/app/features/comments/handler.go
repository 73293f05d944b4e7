// internal/app/features/comments/handler.go
package comments

import (
	"context"
	"net/http"

	commentstore "github.com/baudien321/promptpro/internal/app/store/comments"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Comments.
type Handler struct {
	Comments *commentstore.Store
	Prompts  *promptstore.Store
	Teams    *teamstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a Comments handler.
func NewHandler(comments *commentstore.Store, prompts *promptstore.Store, teams *teamstore.Store, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Comments: comments,
		Prompts:  prompts,
		Teams:    teams,
		AuditLog: al,
		Log:      logger,
	}
}

// loadPrompt parses {id} and fetches the prompt a comment route is
// scoped to. Writes the error response itself and returns nil when the
// caller should stop.
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
		h.Log.Error("comments: prompt load failed", zap.Error(err))
		httpjson.Internal(w)
		return nil
	}
	return prompt
}

// promptTeam fetches the team document for a team-visibility prompt.
// Non-team prompts return (nil, true), and so does a dangling team
// reference: the policy layer reads nil as "no access".
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
		h.Log.Error("comments: team load failed", zap.Error(err))
		return nil, false
	}
	return team, true
}
