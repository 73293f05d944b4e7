// internal/app/features/collections/edit.go
package collections

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type editRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleEdit handles PATCH /collections/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	col := h.loadOwned(w, r)
	if col == nil {
		return
	}

	var req editRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if normalize.Name(req.Name) == "" {
		httpjson.ValidationFailed(w, map[string]string{"name": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Collections.UpdateInfo(ctx, col.ID, normalize.Name(req.Name), req.Description); err != nil {
		h.Log.Error("collections: update failed", zap.Error(err))
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

// HandleDelete handles DELETE /collections/{id}. Deleting a collection
// never touches the prompts it references.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	col := h.loadOwned(w, r)
	if col == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Collections.Delete(ctx, col.ID)
	if err != nil {
		h.Log.Error("collections: delete failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "collection")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
