// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves email/password sign-in.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.Manager
	Log        *zap.Logger
}

// NewHandler constructs a login handler.
func NewHandler(users *userstore.Store, sm *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{Users: users, SessionMgr: sm, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login.
//
// Wrong email and wrong password return the same 401 body so the
// endpoint does not leak which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.ValidationFailed(w, map[string]string{"credentials": "email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Error("login: lookup failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.Unauthorized(w)
		return
	}

	// Google accounts have no password hash; they must use the OAuth path.
	if user.AuthMethod != "password" || user.PasswordHash == "" {
		httpjson.Unauthorized(w)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpjson.Unauthorized(w)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}); err != nil {
		h.Log.Error("login: session write failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", user.ID.Hex()))
	httpjson.Respond(w, http.StatusOK, user)
}
