// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrEmptyContent is returned for blank comment bodies.
	ErrEmptyContent = errors.New("comment content must not be empty")

	// ErrContentTooLong is returned when content exceeds the 1000
	// character cap.
	ErrContentTooLong = errors.New("comment content must be 1000 characters or fewer")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// EnsureIndexes creates the per-prompt listing index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "prompt_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	})
	return err
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListByPrompt returns a prompt's comments, newest first. Comments on a
// deleted prompt remain readable through this path; visibility gating
// happens in the handler against the parent prompt.
func (s *Store) ListByPrompt(ctx context.Context, promptID primitive.ObjectID, limit int64) ([]models.Comment, error) {
	if limit <= 0 {
		limit = 100
	}
	cursor, err := s.c.Find(ctx,
		bson.M{"prompt_id": promptID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create inserts a comment after validating content.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.Content = strings.TrimSpace(cm.Content)
	if cm.Content == "" {
		return models.Comment{}, ErrEmptyContent
	}
	if len(cm.Content) > models.MaxCommentLength {
		return models.Comment{}, ErrContentTooLong
	}

	now := time.Now().UTC()
	cm.ID = primitive.NewObjectID()
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// Delete removes a comment. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
