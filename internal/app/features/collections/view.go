// internal/app/features/collections/view.go
package collections

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

// viewResponse pairs a collection with the prompts its references
// currently resolve to. References to deleted prompts are dropped from
// the prompts list but remain in the collection itself.
type viewResponse struct {
	Collection *models.Collection `json:"collection"`
	Prompts    []models.Prompt    `json:"prompts"`
}

// ServeList handles GET /collections, returning the requester's
// collections.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cols, err := h.Collections.ListForUser(ctx, userID)
	if err != nil {
		h.Log.Error("collections: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, cols)
}

// ServeView handles GET /collections/{id}. The referenced prompts are
// resolved so the client does not have to chase IDs; stale references
// are simply absent from the result.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	col := h.loadOwned(w, r)
	if col == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	prompts, err := h.Prompts.ListByIDs(ctx, col.PromptIDs)
	if err != nil {
		h.Log.Error("collections: resolve prompts failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, viewResponse{Collection: col, Prompts: prompts})
}
