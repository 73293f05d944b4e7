// internal/app/features/register/handler.go
package register

import (
	"context"
	"net/http"
	"strings"

	"github.com/baudien321/promptpro/internal/app/store/audit"
	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/normalize"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves account registration.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.Manager
	AuditLog   *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a registration handler.
func NewHandler(users *userstore.Store, sm *auth.Manager, al *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, SessionMgr: sm, AuditLog: al, Log: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleRegister handles POST /register. On success the new user is
// signed in immediately and returned as JSON.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}

	fields := map[string]string{}
	email := normalize.Email(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email address is required"
	}
	if normalize.Name(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		httpjson.ValidationFailed(w, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("register: bcrypt failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		AuthMethod:   "password",
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.ValidationFailed(w, map[string]string{"email": "an account with this email already exists"})
			return
		}
		h.Log.Error("register: create user failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}); err != nil {
		h.Log.Error("register: session write failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &user.ID,
		Action:     audit.ActionUserRegistered,
		TargetType: audit.TargetUser,
		TargetID:   user.ID,
	})

	h.Log.Info("user registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	httpjson.Respond(w, http.StatusCreated, user)
}
