// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler serves sign-out.
type Handler struct {
	SessionMgr *auth.Manager
	Log        *zap.Logger
}

// NewHandler constructs a logout handler.
func NewHandler(sm *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, Log: logger}
}

// HandleLogout handles POST /logout. Signing out without a session is
// still a 204; the end state is the same either way.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: session clear failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.NoContent(w)
}
