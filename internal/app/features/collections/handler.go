// internal/app/features/collections/handler.go
package collections

import (
	"context"
	"net/http"

	collectionstore "github.com/baudien321/promptpro/internal/app/store/collections"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Collections.
type Handler struct {
	Collections *collectionstore.Store
	Prompts     *promptstore.Store
	Log         *zap.Logger
}

// NewHandler constructs a Collections handler.
func NewHandler(cols *collectionstore.Store, prompts *promptstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Collections: cols,
		Prompts:     prompts,
		Log:         logger,
	}
}

// loadOwned parses {id}, fetches the collection, and checks that the
// requester owns it. Collections are strictly personal, so anyone else
// gets a 404 rather than a 403. Writes the error response itself and
// returns nil when the caller should stop.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) *models.Collection {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return nil
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "collection")
		return nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	col, err := h.Collections.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "collection")
			return nil
		}
		h.Log.Error("collections: load failed", zap.Error(err))
		httpjson.Internal(w)
		return nil
	}
	if col.UserID != userID {
		httpjson.NotFound(w, "collection")
		return nil
	}
	return col
}
