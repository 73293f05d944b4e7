// internal/domain/models/collection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a user-owned, ordered set of prompt references.
//
// Collections are independent of the prompts they reference: deleting a
// prompt does not remove it from collections, so read paths must tolerate
// dangling references.
type Collection struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	PromptIDs   []primitive.ObjectID `bson:"prompt_ids" json:"prompt_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
