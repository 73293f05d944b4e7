// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLength caps comment content.
const MaxCommentLength = 1000

// Comment is a remark attached to a prompt. Visibility is inherited from
// the parent prompt.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PromptID primitive.ObjectID `bson:"prompt_id" json:"prompt_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content  string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
