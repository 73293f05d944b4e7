// internal/app/store/usage/usagestore.go
package usagestore

import (
	"context"
	"time"

	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("usage_events")}
}

// EnsureIndexes creates the aggregation entry points.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "prompt_id", Value: 1},
			{Key: "timestamp", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "team_id", Value: 1},
			{Key: "timestamp", Value: -1},
		}},
	})
	return err
}

// Append records a usage event. Events are never updated or deleted by
// the application.
func (s *Store) Append(ctx context.Context, ev models.UsageEvent) (models.UsageEvent, error) {
	ev.ID = primitive.NewObjectID()
	if ev.RequestID == "" {
		ev.RequestID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.UsageEvent{}, err
	}
	return ev, nil
}

// EventCounts is a per-event-type tally.
type EventCounts struct {
	EventType string `bson:"_id" json:"event_type"`
	Count     int64  `bson:"count" json:"count"`
}

// CountsByPrompt aggregates event tallies for one prompt since a cutoff.
func (s *Store) CountsByPrompt(ctx context.Context, promptID primitive.ObjectID, since time.Time) ([]EventCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"prompt_id": promptID,
			"timestamp": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$event_type",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	return s.aggregateCounts(ctx, pipeline)
}

// PromptActivity is a per-prompt tally within a team.
type PromptActivity struct {
	PromptID primitive.ObjectID `bson:"_id" json:"prompt_id"`
	Count    int64              `bson:"count" json:"count"`
}

// TopPromptsByTeam aggregates the most-used prompts in a team since a
// cutoff.
func (s *Store) TopPromptsByTeam(ctx context.Context, teamID primitive.ObjectID, since time.Time, limit int64) ([]PromptActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"team_id":   teamID,
			"timestamp": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$prompt_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []PromptActivity
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteOlderThan prunes events before the cutoff. Used by the retention
// worker, never by request handlers.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) aggregateCounts(ctx context.Context, pipeline mongo.Pipeline) ([]EventCounts, error) {
	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []EventCounts
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
