// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/baudien321/promptpro/internal/app/system/plans"
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
	// ErrOwnerImmutable is returned by member-removal and role-change
	// paths that target the team owner. The owner entry never leaves the
	// members array through normal membership operations.
	ErrOwnerImmutable = errors.New("the team owner cannot be removed or demoted")

	// ErrNotMember is returned when the target user is not in the team.
	ErrNotMember = errors.New("user is not a member of this team")

	// ErrAlreadyMember is returned when adding a user who is already in
	// the team.
	ErrAlreadyMember = errors.New("user is already a member of this team")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// EnsureIndexes creates membership and billing lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "members.user_id", Value: 1}}},
		{Keys: bson.D{{Key: "stripe_subscription_id", Value: 1}}},
		{Keys: bson.D{{Key: "name_ci", Value: 1}}},
	})
	return err
}

// GetByID loads a team by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySubscriptionID looks a team up by its billing subscription
// identifier. Provider status events carry the subscription ID, not the
// team ID.
func (s *Store) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"stripe_subscription_id": subscriptionID}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListForUser returns every team the user is a member of.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	cursor, err := s.c.Find(ctx,
		bson.M{"members.user_id": userID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Create inserts a new team. The creator is auto-added as the sole owner
// and the prompt limit is derived from the starting plan.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.NameCI = text.Fold(t.Name)
	if !t.Plan.Valid() {
		t.Plan = models.PlanFree
	}
	t.PromptLimit = plans.TeamPromptLimit(t.Plan)
	t.Members = []models.TeamMember{{
		UserID:   t.CreatorID,
		Role:     models.RoleOwner,
		JoinedAt: now,
	}}
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// UpdateInfo changes the team's name/description.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	set := bson.M{
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a team document. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddMember appends a membership entry via $addToSet on user_id match.
//
// The filter excludes teams that already contain the user, so a
// concurrent duplicate add matches zero documents instead of producing
// two entries.
func (s *Store) AddMember(ctx context.Context, teamID, userID primitive.ObjectID, role string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": teamID, "members.user_id": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"members": models.TeamMember{
				UserID:   userID,
				Role:     role,
				JoinedAt: time.Now().UTC(),
			}},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the team doesn't exist or the user is already in it;
		// distinguish for the caller.
		n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": teamID})
		if cerr != nil {
			return cerr
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrAlreadyMember
	}
	return nil
}

// RemoveMember pulls a membership entry. Removal of the owner is always
// rejected, regardless of who asks.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	m, found := team.Member(userID)
	if !found {
		return ErrNotMember
	}
	if m.Role == models.RoleOwner {
		return ErrOwnerImmutable
	}

	_, err = s.c.UpdateByID(ctx, teamID, bson.M{
		"$pull": bson.M{"members": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetMemberRole changes a member's role between admin and member. The
// owner's entry cannot be changed, and nobody can be promoted to owner
// through this path.
func (s *Store) SetMemberRole(ctx context.Context, teamID, userID primitive.ObjectID, role string) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return errors.New(`role must be "admin"|"member"`)
	}

	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	m, found := team.Member(userID)
	if !found {
		return ErrNotMember
	}
	if m.Role == models.RoleOwner {
		return ErrOwnerImmutable
	}

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": teamID, "members.user_id": userID},
		bson.M{"$set": bson.M{
			"members.$.role": role,
			"updated_at":     time.Now().UTC(),
		}})
	return err
}

// SetPlan applies a plan transition and recomputes the prompt limit.
// A single unconditional $set makes re-delivered billing notifications
// idempotent: applying the same transition twice leaves the same state.
func (s *Store) SetPlan(ctx context.Context, id primitive.ObjectID, plan models.Plan, customerID, subscriptionID string) error {
	set := bson.M{
		"plan":         plan,
		"prompt_limit": plans.TeamPromptLimit(plan),
		"updated_at":   time.Now().UTC(),
	}
	if customerID != "" {
		set["stripe_customer_id"] = customerID
	}
	if subscriptionID != "" {
		set["stripe_subscription_id"] = subscriptionID
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SetPromptLimit overrides the team's quota independent of plan.
func (s *Store) SetPromptLimit(ctx context.Context, id primitive.ObjectID, limit int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"prompt_limit": limit,
		"updated_at":   time.Now().UTC(),
	}})
	return err
}
