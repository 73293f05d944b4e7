// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"github.com/baudien321/promptpro/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config controls where audit events go.
// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only),
// "off" (disabled).
type Config struct {
	Mode string
}

// Logger records audit events to MongoDB (via audit.Store) and to
// structured logs (via zap).
//
// Recording is fire-and-forget relative to the primary request path: a
// failed audit write is logged and swallowed, never surfaced to the
// caller, and the primary mutation is never rolled back because of it.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// logToZap mirrors the event to structured logs.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("action", event.Action),
		zap.String("target_type", event.TargetType),
		zap.String("target_id", event.TargetID.Hex()),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Record stores an audit event. Nil-safe (tests may pass a nil Logger).
// Action is required; events without one are dropped with a warning.
func (l *Logger) Record(ctx context.Context, event audit.Event) {
	if l == nil || l.config.Mode == "off" {
		return
	}
	if event.Action == "" {
		l.zapLog.Warn("audit event dropped: missing action",
			zap.String("target_type", event.TargetType))
		return
	}

	if l.config.Mode == "all" || l.config.Mode == "log" || l.config.Mode == "" {
		l.logToZap(event)
	}
	if l.config.Mode == "all" || l.config.Mode == "db" || l.config.Mode == "" {
		if l.store == nil {
			return
		}
		if err := l.store.Append(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("action", event.Action),
			)
		}
	}
}

// --- Convenience constructors for the recorded actions ---

// PromptCreated records a prompt creation by actor.
func (l *Logger) PromptCreated(ctx context.Context, actorID, promptID primitive.ObjectID, visibility string) {
	l.Record(ctx, audit.Event{
		ActorID:    &actorID,
		Action:     audit.ActionPromptCreated,
		TargetType: audit.TargetPrompt,
		TargetID:   promptID,
		Details:    map[string]string{"visibility": visibility},
	})
}

// PromptDeleted records a prompt deletion by actor.
func (l *Logger) PromptDeleted(ctx context.Context, actorID, promptID primitive.ObjectID) {
	l.Record(ctx, audit.Event{
		ActorID:    &actorID,
		Action:     audit.ActionPromptDeleted,
		TargetType: audit.TargetPrompt,
		TargetID:   promptID,
	})
}

// MemberRoleChanged records a team-member role change.
func (l *Logger) MemberRoleChanged(ctx context.Context, actorID, teamID, memberID primitive.ObjectID, oldRole, newRole string) {
	l.Record(ctx, audit.Event{
		ActorID:    &actorID,
		Action:     audit.ActionMemberRoleSet,
		TargetType: audit.TargetTeam,
		TargetID:   teamID,
		Details: map[string]string{
			"member_id": memberID.Hex(),
			"old_role":  oldRole,
			"new_role":  newRole,
		},
	})
}

// PlanChanged records a team plan transition driven by billing events.
// actorID is nil for provider-triggered transitions.
func (l *Logger) PlanChanged(ctx context.Context, teamID primitive.ObjectID, oldPlan, newPlan, reason string) {
	action := audit.ActionPlanUpgraded
	if newPlan == "free" {
		action = audit.ActionPlanDowngraded
	}
	l.Record(ctx, audit.Event{
		Action:     action,
		TargetType: audit.TargetTeam,
		TargetID:   teamID,
		Details: map[string]string{
			"old_plan": oldPlan,
			"new_plan": newPlan,
			"reason":   reason,
		},
	})
}
