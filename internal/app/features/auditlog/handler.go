// internal/app/features/auditlog/handler.go

// Package auditlog exposes the audit trail over HTTP. The trail itself
// is written by the system/auditlog recorder; this feature only reads.
package auditlog

import (
	"github.com/baudien321/promptpro/internal/app/store/audit"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the audit trail.
type Handler struct {
	Audit *audit.Store
	Teams *teamstore.Store
	Log   *zap.Logger
}

// NewHandler constructs an audit trail handler.
func NewHandler(auditStore *audit.Store, teams *teamstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Audit: auditStore,
		Teams: teams,
		Log:   logger,
	}
}
