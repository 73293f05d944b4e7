package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Repeated calls accumulate parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user on the given plan.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, plan models.Plan) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		EmailCI:    text.Fold(email),
		Name:       name,
		AuthMethod: "password",
		Plan:       plan,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUserWithPromptCount creates a test user with a preset counter.
func (f *Fixtures) CreateUserWithPromptCount(ctx context.Context, name, email string, plan models.Plan, promptCount int) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email, plan)
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"prompt_count": promptCount}})
	if err != nil {
		f.t.Fatalf("failed to set prompt_count: %v", err)
	}
	u.PromptCount = promptCount
	return u
}

// CreateTeam creates a test team owned by ownerID, with optional extra
// members.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, ownerID primitive.ObjectID, extra ...models.TeamMember) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	members := append([]models.TeamMember{{
		UserID:   ownerID,
		Role:     models.RoleOwner,
		JoinedAt: now,
	}}, extra...)

	team := models.Team{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		CreatorID:   ownerID,
		Members:     members,
		Plan:        models.PlanFree,
		PromptLimit: 50,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// Membership builds a members-array entry for CreateTeam.
func Membership(userID primitive.ObjectID, role string) models.TeamMember {
	return models.TeamMember{UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
}

// CreatePrompt creates a test prompt.
func (f *Fixtures) CreatePrompt(ctx context.Context, title string, creatorID primitive.ObjectID, visibility string, teamID *primitive.ObjectID) models.Prompt {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Prompt{
		ID:         primitive.NewObjectID(),
		Title:      title,
		TitleCI:    text.Fold(title),
		Text:       "You are a helpful assistant.",
		CreatorID:  creatorID,
		Visibility: visibility,
		TeamID:     teamID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("prompts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test prompt: %v", err)
	}
	return p
}

// CreateCollection creates an empty test collection.
func (f *Fixtures) CreateCollection(ctx context.Context, name string, userID primitive.ObjectID) models.Collection {
	f.t.Helper()

	now := time.Now().UTC()
	col := models.Collection{
		ID:        primitive.NewObjectID(),
		Name:      name,
		UserID:    userID,
		PromptIDs: []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("collections").InsertOne(ctx, col); err != nil {
		f.t.Fatalf("failed to create test collection: %v", err)
	}
	return col
}

// CreateComment creates a test comment on a prompt.
func (f *Fixtures) CreateComment(ctx context.Context, promptID, authorID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	cm := models.Comment{
		ID:        primitive.NewObjectID(),
		PromptID:  promptID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, cm); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return cm
}
