package analytics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baudien321/promptpro/internal/app/features/analytics"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/baudien321/promptpro/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type env struct {
	h        *analytics.Handler
	fixtures *testutil.Fixtures
	usage    *usagestore.Store
	ctx      context.Context
}

func setup(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	us := usagestore.New(db)
	return &env{
		h:        analytics.NewHandler(us, promptstore.New(db), teamstore.New(db), zap.NewNop()),
		fixtures: testutil.NewFixtures(t, db),
		usage:    us,
		ctx:      ctx,
	}
}

func asUser(req *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(req, &auth.SessionUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email})
}

func (e *env) appendEvent(t *testing.T, promptID, userID primitive.ObjectID, teamID *primitive.ObjectID, eventType string) {
	t.Helper()
	_, err := e.usage.Append(e.ctx, models.UsageEvent{
		PromptID:  promptID,
		UserID:    userID,
		TeamID:    teamID,
		EventType: eventType,
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
}

func TestServePromptStats(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Tracked", user.ID, models.VisibilityPublic, nil)

	e.appendEvent(t, prompt.ID, user.ID, nil, models.UsageEventUse)
	e.appendEvent(t, prompt.ID, user.ID, nil, models.UsageEventUse)
	e.appendEvent(t, prompt.ID, user.ID, nil, models.UsageEventSuccess)

	req := httptest.NewRequest("GET", "/analytics/prompts/"+prompt.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.ServePromptStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Counts []usagestore.EventCounts `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	got := map[string]int64{}
	for _, c := range resp.Counts {
		got[c.EventType] = c.Count
	}
	if got[models.UsageEventUse] != 2 {
		t.Errorf("use count: got %d, want 2", got[models.UsageEventUse])
	}
	if got[models.UsageEventSuccess] != 1 {
		t.Errorf("success count: got %d, want 1", got[models.UsageEventSuccess])
	}
}

func TestServePromptStats_PrivateHiddenFromOthers(t *testing.T) {
	e := setup(t)
	author := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	other := e.fixtures.CreateUser(e.ctx, "Other", "other@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Secret", author.ID, models.VisibilityPrivate, nil)

	req := httptest.NewRequest("GET", "/analytics/prompts/"+prompt.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, other)
	rec := httptest.NewRecorder()

	e.h.ServePromptStats(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServeTeamStats(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID)
	hot := e.fixtures.CreatePrompt(e.ctx, "Hot", owner.ID, models.VisibilityTeam, &team.ID)
	cold := e.fixtures.CreatePrompt(e.ctx, "Cold", owner.ID, models.VisibilityTeam, &team.ID)

	for i := 0; i < 3; i++ {
		e.appendEvent(t, hot.ID, owner.ID, &team.ID, models.UsageEventUse)
	}
	e.appendEvent(t, cold.ID, owner.ID, &team.ID, models.UsageEventUse)

	req := httptest.NewRequest("GET", "/analytics/teams/"+team.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	req = asUser(req, owner)
	rec := httptest.NewRecorder()

	e.h.ServeTeamStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Prompts []usagestore.PromptActivity `json:"prompts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Prompts) != 2 {
		t.Fatalf("prompts: got %d entries, want 2", len(resp.Prompts))
	}
	if resp.Prompts[0].PromptID != hot.ID || resp.Prompts[0].Count != 3 {
		t.Errorf("top prompt: got %s/%d, want %s/3",
			resp.Prompts[0].PromptID.Hex(), resp.Prompts[0].Count, hot.ID.Hex())
	}
}

func TestServeTeamStats_NonMember(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	outsider := e.fixtures.CreateUser(e.ctx, "Outsider", "out@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID)

	req := httptest.NewRequest("GET", "/analytics/teams/"+team.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	req = asUser(req, outsider)
	rec := httptest.NewRecorder()

	e.h.ServeTeamStats(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
