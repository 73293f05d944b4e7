// internal/app/features/prompts/create.go
package prompts

import (
	"context"
	"net/http"
	"strings"

	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/htmlsanitize"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/plans"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createRequest struct {
	Title          string   `json:"title"`
	Text           string   `json:"text"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	PlatformCompat []string `json:"platform_compat"`
	Visibility     string   `json:"visibility"`
	TeamID         string   `json:"team_id"`
}

// HandleCreate handles POST /prompts.
//
// Quota enforcement is check-then-act: personal prompts are checked
// against the user's plan limit, team prompts against the team's
// prompt limit, then the insert runs. The personal counter is
// incremented by one for every created prompt regardless of
// visibility.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "prompt text is required"
	}
	if req.Visibility == "" {
		req.Visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(req.Visibility) {
		fields["visibility"] = `visibility must be "private", "team", or "public"`
	}
	if req.Visibility == models.VisibilityTeam && req.TeamID == "" {
		fields["team_id"] = "team_id is required for team prompts"
	}
	if req.Visibility != models.VisibilityTeam && req.TeamID != "" {
		fields["team_id"] = "team_id is only valid for team prompts"
	}
	if len(req.Tags) > models.MaxPromptTags {
		fields["tags"] = "a prompt may have at most 10 tags"
	}
	if len(fields) > 0 {
		httpjson.ValidationFailed(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var teamID *primitive.ObjectID
	if req.Visibility != models.VisibilityTeam {
		user, err := h.Users.GetByID(ctx, userID)
		if err != nil {
			h.Log.Error("prompts: user load failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		if d := plans.CheckPersonal(user); !d.Allowed {
			httpjson.LimitExceeded(w, d.Limit, d.Current, d.Scope)
			return
		}
	} else {
		tid, err := primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			httpjson.ValidationFailed(w, map[string]string{"team_id": "invalid team id"})
			return
		}
		team, err := h.Teams.GetByID(ctx, tid)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.NotFound(w, "team")
				return
			}
			h.Log.Error("prompts: team load failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		// Membership alone gates team creation; the capability table
		// is not consulted here.
		if _, found := team.Member(userID); !found {
			httpjson.Forbidden(w, "you are not a member of this team")
			return
		}

		count, err := h.Prompts.CountByTeam(ctx, tid)
		if err != nil {
			h.Log.Error("prompts: team count failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		if d := plans.CheckTeam(team, int(count)); !d.Allowed {
			httpjson.LimitExceeded(w, d.Limit, d.Current, d.Scope)
			return
		}
		teamID = &tid
	}

	prompt, err := h.Prompts.Create(ctx, models.Prompt{
		Title:          htmlsanitize.Strip(req.Title),
		Text:           req.Text,
		Description:    htmlsanitize.Strip(req.Description),
		CreatorID:      userID,
		Tags:           req.Tags,
		PlatformCompat: req.PlatformCompat,
		Visibility:     req.Visibility,
		TeamID:         teamID,
	})
	if err != nil {
		if err == promptstore.ErrTooManyTags {
			httpjson.ValidationFailed(w, map[string]string{"tags": "a prompt may have at most 10 tags"})
			return
		}
		h.Log.Error("prompts: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Users.IncPromptCount(ctx, userID, 1); err != nil {
		h.Log.Error("prompts: counter increment failed",
			zap.String("user_id", userID.Hex()), zap.Error(err))
	}

	h.AuditLog.PromptCreated(ctx, userID, prompt.ID, prompt.Visibility)

	httpjson.Respond(w, http.StatusCreated, prompt)
}
