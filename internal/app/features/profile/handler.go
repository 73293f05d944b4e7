// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"

	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own account.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a profile handler.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// ServeMe handles GET /me. The fresh user document carries plan and
// prompt-count state that is not in the session cookie.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Session references a deleted account.
			httpjson.Unauthorized(w)
			return
		}
		h.Log.Error("profile: lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, user)
}

type updateRequest struct {
	Name string `json:"name"`
}

// HandleUpdate handles PATCH /me.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req updateRequest
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

	if err := h.Users.UpdateProfile(ctx, userID, req.Name); err != nil {
		h.Log.Error("profile: update failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("profile: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, user)
}
