// internal/app/store/collections/collectionstore.go
package collectionstore

import (
	"context"
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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("collections")}
}

// EnsureIndexes creates the per-user listing index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	})
	return err
}

// GetByID loads a collection by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	var col models.Collection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&col); err != nil {
		return nil, err
	}
	return &col, nil
}

// ListForUser returns the user's collections, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Collection, error) {
	cursor, err := s.c.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cols []models.Collection
	if err := cursor.All(ctx, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// Create inserts a new, empty collection.
func (s *Store) Create(ctx context.Context, col models.Collection) (models.Collection, error) {
	now := time.Now().UTC()
	col.ID = primitive.NewObjectID()
	if col.PromptIDs == nil {
		col.PromptIDs = []primitive.ObjectID{}
	}
	col.CreatedAt = now
	col.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, col); err != nil {
		return models.Collection{}, err
	}
	return col, nil
}

// UpdateInfo changes name/description.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	set := bson.M{
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	if name != "" {
		set["name"] = name
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a collection. Prompts it referenced are untouched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddPrompt appends a prompt reference. $addToSet keeps the list unique
// under concurrent adds.
func (s *Store) AddPrompt(ctx context.Context, id, promptID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"prompt_ids": promptID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemovePrompt pulls a prompt reference. Removing an ID that is absent
// (for instance an already-dangling reference) is a no-op, not an error.
func (s *Store) RemovePrompt(ctx context.Context, id, promptID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"prompt_ids": promptID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
