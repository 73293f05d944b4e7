// internal/app/features/collections/create.go
package collections

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate handles POST /collections.
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
	if normalize.Name(req.Name) == "" {
		httpjson.ValidationFailed(w, map[string]string{"name": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	col, err := h.Collections.Create(ctx, models.Collection{
		Name:        normalize.Name(req.Name),
		Description: req.Description,
		UserID:      userID,
	})
	if err != nil {
		h.Log.Error("collections: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusCreated, col)
}
