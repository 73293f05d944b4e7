// internal/app/store/prompts/promptstore.go
package promptstore

import (
	"context"
	"errors"
	"time"

	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrTooManyTags is returned when a prompt carries more than the
	// allowed number of tags.
	ErrTooManyTags = errors.New("a prompt may have at most 10 tags")

	// ErrBadRating is returned for rating values outside 1..5.
	ErrBadRating = errors.New("rating must be between 1 and 5")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("prompts")}
}

// EnsureIndexes creates listing, team and text-search indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "creator_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "team_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "visibility", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags", Value: "text"},
		}},
	})
	return err
}

// GetByID loads a prompt by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prompt, error) {
	var p models.Prompt
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new prompt. Tags are deduplicated and capped; counters
// start at zero. Quota checks happen in the handler before this call.
func (s *Store) Create(ctx context.Context, p models.Prompt) (models.Prompt, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.Tags = dedupeTags(p.Tags)
	if len(p.Tags) > models.MaxPromptTags {
		return models.Prompt{}, ErrTooManyTags
	}
	p.UsageCount = 0
	p.SuccessCount = 0
	p.FailureCount = 0
	p.Ratings = nil
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Prompt{}, err
	}
	return p, nil
}

// Update rewrites the mutable content fields of a prompt. Counters,
// ratings, creator and visibility scoping are untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, promptText, desc string, tags, platforms []string) error {
	tags = dedupeTags(tags)
	if len(tags) > models.MaxPromptTags {
		return ErrTooManyTags
	}
	set := bson.M{
		"text":            promptText,
		"description":     desc,
		"tags":            tags,
		"platform_compat": platforms,
		"updated_at":      time.Now().UTC(),
	}
	if title != "" {
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a prompt. Comments referencing it stay in place, and
// collections keep their (now dangling) references.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByTeam returns how many prompts belong to the team. Used by the
// plan-limit check before a team prompt is created.
func (s *Store) CountByTeam(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"team_id": teamID})
}

// ListByTeam returns a team's prompts, newest first.
func (s *Store) ListByTeam(ctx context.Context, teamID primitive.ObjectID, limit int64) ([]models.Prompt, error) {
	return s.list(ctx, bson.M{"team_id": teamID}, limit)
}

// ListByCreator returns a user's own prompts, newest first.
func (s *Store) ListByCreator(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Prompt, error) {
	return s.list(ctx, bson.M{"creator_id": userID}, limit)
}

// ListByIDs fetches the prompts whose IDs appear in ids. IDs with no
// matching document are silently omitted, so callers resolving
// collection references get only the prompts that still exist.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Prompt, error) {
	if len(ids) == 0 {
		return []models.Prompt{}, nil
	}
	return s.list(ctx, bson.M{"_id": bson.M{"$in": ids}}, int64(len(ids)))
}

// ListPublic returns public prompts, newest first.
func (s *Store) ListPublic(ctx context.Context, limit int64) ([]models.Prompt, error) {
	return s.list(ctx, bson.M{"visibility": models.VisibilityPublic}, limit)
}

// Search runs a text query over public prompts plus the user's own.
func (s *Store) Search(ctx context.Context, userID primitive.ObjectID, q string, limit int64) ([]models.Prompt, error) {
	filter := bson.M{
		"$text": bson.M{"$search": q},
		"$or": []bson.M{
			{"visibility": models.VisibilityPublic},
			{"creator_id": userID},
		},
	}
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetLimit(limit)
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prompts []models.Prompt
	if err := cursor.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// IncUsage bumps usage_count, and success/failure counters for outcome
// events. All counter movement is $inc so concurrent events never lose
// updates.
func (s *Store) IncUsage(ctx context.Context, id primitive.ObjectID, eventType string) error {
	inc := bson.M{"usage_count": 1}
	switch eventType {
	case models.UsageEventSuccess:
		inc["success_count"] = 1
	case models.UsageEventFailure:
		inc["failure_count"] = 1
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": inc})
	return err
}

// Rate records a 1-5 rating, one per user. Re-rating replaces the user's
// existing entry in place; a first rating is pushed.
func (s *Store) Rate(ctx context.Context, id, userID primitive.ObjectID, value int) error {
	if value < 1 || value > 5 {
		return ErrBadRating
	}

	// Replace an existing rating first.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "ratings.user_id": userID},
		bson.M{"$set": bson.M{"ratings.$.value": value}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No existing rating: push, guarding against a concurrent first rate.
	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, "ratings.user_id": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"ratings": models.Rating{UserID: userID, Value: value}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Prompt vanished or the concurrent rate won; re-run the replace.
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": id, "ratings.user_id": userID},
			bson.M{"$set": bson.M{"ratings.$.value": value}})
	}
	return err
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]models.Prompt, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prompts []models.Prompt
	if err := cursor.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
