// internal/app/features/teams/handler.go
package teams

import (
	"context"
	"net/http"

	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
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

// Handler is the feature-level entry point for Teams.
type Handler struct {
	Teams    *teamstore.Store
	Users    *userstore.Store
	Prompts  *promptstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a Teams handler.
func NewHandler(teams *teamstore.Store, users *userstore.Store, prompts *promptstore.Store, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Teams:    teams,
		Users:    users,
		Prompts:  prompts,
		AuditLog: al,
		Log:      logger,
	}
}

// loadTeam parses the {id} URL parameter and fetches the team. It writes
// the error response itself and returns nil when the caller should stop.
func (h *Handler) loadTeam(w http.ResponseWriter, r *http.Request) *models.Team {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "team")
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "team")
			return nil
		}
		h.Log.Error("teams: load failed", zap.Error(err))
		httpjson.Internal(w)
		return nil
	}
	return team
}
