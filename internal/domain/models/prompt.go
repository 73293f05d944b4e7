// internal/domain/models/prompt.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prompt visibility scopes.
const (
	VisibilityPrivate = "private" // creator only
	VisibilityTeam    = "team"    // team members per role
	VisibilityPublic  = "public"  // viewable by anyone
)

// MaxPromptTags caps the tags array on a prompt.
const MaxPromptTags = 10

// Rating is a single user's 1-5 rating of a prompt. One entry per user;
// re-rating replaces the existing entry.
type Rating struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Value  int                `bson:"value" json:"value"`
}

// Prompt is a reusable text prompt.
//
// TeamID is set iff Visibility is "team". Counters (UsageCount,
// SuccessCount, FailureCount) are only ever mutated via $inc.
type Prompt struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	TitleCI        string              `bson:"title_ci" json:"-"`
	Text           string              `bson:"text" json:"text"`
	Description    string              `bson:"description" json:"description"`
	CreatorID      primitive.ObjectID  `bson:"creator_id" json:"creator_id"`
	Tags           []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	PlatformCompat []string            `bson:"platform_compat,omitempty" json:"platform_compat,omitempty"`
	Visibility     string              `bson:"visibility" json:"visibility"`
	TeamID         *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	UsageCount   int      `bson:"usage_count" json:"usage_count"`
	Ratings      []Rating `bson:"ratings,omitempty" json:"ratings,omitempty"`
	SuccessCount int      `bson:"success_count" json:"success_count"`
	FailureCount int      `bson:"failure_count" json:"failure_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidVisibility reports whether v is a known visibility value.
func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityTeam || v == VisibilityPublic
}
