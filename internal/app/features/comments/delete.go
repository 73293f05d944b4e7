// internal/app/features/comments/delete.go
package comments

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /comments/{id}. The author may always
// delete their own comment. On team prompts, admins and the owner may
// moderate anyone's comment. Comments on a deleted prompt stay
// author-deletable.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "comment")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "comment")
			return
		}
		h.Log.Error("comments: load failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if cm.AuthorID != userID && !h.canModerate(ctx, cm, userID) {
		httpjson.Forbidden(w, "You do not have permission to delete this comment")
		return
	}

	n, err := h.Comments.Delete(ctx, cm.ID)
	if err != nil {
		h.Log.Error("comments: delete failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "comment")
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionCommentDeleted,
		TargetType: audit.TargetComment,
		TargetID:   cm.ID,
		Details:    map[string]string{"prompt_id": cm.PromptID.Hex()},
	})

	w.WriteHeader(http.StatusNoContent)
}

// canModerate reports whether userID may remove someone else's comment.
// That requires the comment's prompt to be a team prompt on which the
// user holds the delete-any capability.
func (h *Handler) canModerate(ctx context.Context, cm *models.Comment, userID primitive.ObjectID) bool {
	prompt, err := h.Prompts.GetByID(ctx, cm.PromptID)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Error("comments: prompt load failed", zap.Error(err))
		}
		return false
	}

	team, ok := h.promptTeam(ctx, prompt)
	if !ok || team == nil {
		return false
	}
	return teampolicy.HasCapability(team, userID, teampolicy.CapDeleteAnyPrompt)
}
