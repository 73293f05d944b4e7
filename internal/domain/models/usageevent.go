// internal/domain/models/usageevent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usage event types.
const (
	UsageEventCopy    = "copy"
	UsageEventUse     = "use"
	UsageEventSuccess = "success"
	UsageEventFailure = "failure"
)

// UsageEvent is an append-only record of a prompt being exercised.
// Events are never mutated; analytics aggregates over them.
type UsageEvent struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PromptID primitive.ObjectID  `bson:"prompt_id" json:"prompt_id"`
	UserID   primitive.ObjectID  `bson:"user_id" json:"user_id"`
	TeamID   *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	EventType string    `bson:"event_type" json:"event_type"`
	RequestID string    `bson:"request_id,omitempty" json:"-"` // uuid, for tracing
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ValidUsageEventType reports whether t is a known usage event type.
func ValidUsageEventType(t string) bool {
	switch t {
	case UsageEventCopy, UsageEventUse, UsageEventSuccess, UsageEventFailure:
		return true
	}
	return false
}
