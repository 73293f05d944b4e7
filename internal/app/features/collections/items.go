// internal/app/features/collections/items.go
package collections

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addPromptRequest struct {
	PromptID string `json:"prompt_id"`
}

// HandleAddPrompt handles POST /collections/{id}/prompts. The prompt
// must exist at add time; membership is a set, so re-adding is a no-op.
func (h *Handler) HandleAddPrompt(w http.ResponseWriter, r *http.Request) {
	col := h.loadOwned(w, r)
	if col == nil {
		return
	}

	var req addPromptRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	promptID, err := primitive.ObjectIDFromHex(req.PromptID)
	if err != nil {
		httpjson.ValidationFailed(w, map[string]string{"prompt_id": "invalid prompt id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Prompts.GetByID(ctx, promptID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "prompt")
			return
		}
		h.Log.Error("collections: prompt lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Collections.AddPrompt(ctx, col.ID, promptID); err != nil {
		h.Log.Error("collections: add prompt failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	fresh, err := h.Collections.GetByID(ctx, col.ID)
	if err != nil {
		h.Log.Error("collections: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, fresh)
}

// HandleRemovePrompt handles DELETE /collections/{id}/prompts/{promptID}.
// Removing a reference that is not present succeeds quietly, which also
// lets clients clean up references to prompts deleted long ago.
func (h *Handler) HandleRemovePrompt(w http.ResponseWriter, r *http.Request) {
	col := h.loadOwned(w, r)
	if col == nil {
		return
	}

	promptID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "promptID"))
	if err != nil {
		httpjson.NotFound(w, "prompt")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Collections.RemovePrompt(ctx, col.ID, promptID); err != nil {
		h.Log.Error("collections: remove prompt failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
