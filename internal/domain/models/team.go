// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team member roles. Exactly one member per team holds RoleOwner, and at
// creation time that member is the creator.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TeamMember is an entry in a team's embedded members array.
type TeamMember struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role     string             `bson:"role" json:"role"` // "owner" | "admin" | "member"
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

// Team is a shared workspace for team-visibility prompts.
//
// Members are embedded rather than joined: membership lists are small
// (tens, not thousands) and every permission check needs the full list.
// PromptLimit is derived from Plan and recomputed on every plan change.
type Team struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Members     []TeamMember       `bson:"members" json:"members"`

	Plan        Plan `bson:"plan" json:"plan"`
	PromptLimit int  `bson:"prompt_limit" json:"prompt_limit"`

	StripeCustomerID     string `bson:"stripe_customer_id,omitempty" json:"-"`
	StripeSubscriptionID string `bson:"stripe_subscription_id,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Member returns the membership entry for userID, if present.
func (t *Team) Member(userID primitive.ObjectID) (TeamMember, bool) {
	for _, m := range t.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return TeamMember{}, false
}
