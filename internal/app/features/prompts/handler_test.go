package prompts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baudien321/promptpro/internal/app/features/prompts"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/baudien321/promptpro/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type env struct {
	h        *prompts.Handler
	fixtures *testutil.Fixtures
	prompts  *promptstore.Store
	users    *userstore.Store
	ctx      context.Context
	db       *mongo.Database
}

func setup(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ps := promptstore.New(db)
	us := userstore.New(db)
	al := auditlog.New(audit.New(db), zap.NewNop(), auditlog.Config{Mode: "db"})
	h := prompts.NewHandler(ps, teamstore.New(db), us, usagestore.New(db), al, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	return &env{
		h:        h,
		fixtures: testutil.NewFixtures(t, db),
		prompts:  ps,
		users:    us,
		ctx:      ctx,
		db:       db,
	}
}

func asUser(req *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(req, &auth.SessionUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email})
}

func TestHandleCreate_Private(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)

	body := `{"title":"Summarizer","text":"Summarize this.","tags":["summarize"]}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp models.Prompt
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Visibility != models.VisibilityPrivate {
		t.Errorf("visibility: got %q, want %q", resp.Visibility, models.VisibilityPrivate)
	}

	// The author's counter advanced.
	fresh, err := e.users.GetByID(e.ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fresh.PromptCount != 1 {
		t.Errorf("PromptCount: got %d, want 1", fresh.PromptCount)
	}
}

func TestHandleCreate_FreeUserAtLimit(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUserWithPromptCount(e.ctx, "Full", "full@example.com", models.PlanFree, 10)

	body := `{"title":"One Too Many","text":"x"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d: %s", http.StatusForbidden, rec.Code, rec.Body.String())
	}

	var resp httpjson.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Code != httpjson.CodeLimitExceeded {
		t.Errorf("code: got %q, want %q", resp.Code, httpjson.CodeLimitExceeded)
	}
	if resp.Limit == nil || *resp.Limit != 10 {
		t.Errorf("limit: got %v, want 10", resp.Limit)
	}
	if resp.Current == nil || *resp.Current != 10 {
		t.Errorf("current: got %v, want 10", resp.Current)
	}
	if resp.Scope != "personal" {
		t.Errorf("scope: got %q, want %q", resp.Scope, "personal")
	}
}

func TestHandleCreate_ProUserUnlimited(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUserWithPromptCount(e.ctx, "Pro", "pro@example.com", models.PlanPro, 500)

	body := `{"title":"Still Fine","text":"x"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_TeamAtLimit(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID)
	for i := 0; i < 50; i++ {
		e.fixtures.CreatePrompt(e.ctx, "Filler", owner.ID, models.VisibilityTeam, &team.ID)
	}

	body := `{"title":"Over","text":"x","visibility":"team","team_id":"` + team.ID.Hex() + `"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, owner)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d: %s", http.StatusForbidden, rec.Code, rec.Body.String())
	}

	var resp httpjson.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Scope != "team" {
		t.Errorf("scope: got %q, want %q", resp.Scope, "team")
	}
	if resp.Limit == nil || *resp.Limit != 50 {
		t.Errorf("limit: got %v, want 50", resp.Limit)
	}
}

func TestHandleCreate_TeamNonMember(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	outsider := e.fixtures.CreateUser(e.ctx, "Outsider", "out@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID)

	body := `{"title":"Nope","text":"x","visibility":"team","team_id":"` + team.ID.Hex() + `"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, outsider)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestServeView_PrivateHiddenFromOthers(t *testing.T) {
	e := setup(t)
	author := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	other := e.fixtures.CreateUser(e.ctx, "Other", "other@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Mine", author.ID, models.VisibilityPrivate, nil)

	req := httptest.NewRequest("GET", "/prompts/"+prompt.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, other)
	rec := httptest.NewRecorder()

	e.h.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleDelete_MemberCannotDeleteOwnTeamPrompt(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Theirs", member.ID, models.VisibilityTeam, &team.ID)

	req := httptest.NewRequest("DELETE", "/prompts/"+prompt.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()

	e.h.HandleDelete(rec, req)

	// Creating a team prompt does not grant the right to delete it.
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleDelete_AdminDeletesTeamPrompt(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Theirs", member.ID, models.VisibilityTeam, &team.ID)

	req := httptest.NewRequest("DELETE", "/prompts/"+prompt.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, owner)
	rec := httptest.NewRecorder()

	e.h.HandleDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
	}
	if _, err := e.prompts.GetByID(e.ctx, prompt.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected prompt to be deleted, got %v", err)
	}
}

func TestHandleEdit_MemberEditsOwnTeamPrompt(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Theirs", member.ID, models.VisibilityTeam, &team.ID)

	body := `{"title":"Edited","text":"updated text"}`
	req := httptest.NewRequest("PATCH", "/prompts/"+prompt.ID.Hex(), strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()

	e.h.HandleEdit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestHandleEdit_MemberCannotEditOthersTeamPrompt(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Owners", owner.ID, models.VisibilityTeam, &team.ID)

	body := `{"title":"Hijack","text":"x"}`
	req := httptest.NewRequest("PATCH", "/prompts/"+prompt.ID.Hex(), strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()

	e.h.HandleEdit(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleRate(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Rater", "rater@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Public", user.ID, models.VisibilityPublic, nil)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/rate", strings.NewReader(`{"value":4}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleRate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp models.Prompt
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Ratings) != 1 || resp.Ratings[0].Value != 4 {
		t.Errorf("ratings: got %+v, want one rating of 4", resp.Ratings)
	}
}

func TestHandleUsage(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "User", "user@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Tracked", user.ID, models.VisibilityPublic, nil)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/usage",
		strings.NewReader(`{"event_type":"success"}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleUsage(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	fresh, err := e.prompts.GetByID(e.ctx, prompt.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fresh.UsageCount != 1 || fresh.SuccessCount != 1 {
		t.Errorf("counters: usage=%d success=%d, want 1/1", fresh.UsageCount, fresh.SuccessCount)
	}
}

func TestHandleUsage_BadEventType(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "User", "user@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Tracked", user.ID, models.VisibilityPublic, nil)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/usage",
		strings.NewReader(`{"event_type":"clicked"}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleUsage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleCreate_AuditUnavailable(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)

	// An audit logger with no backing store cannot persist events. The
	// create must still succeed.
	broken := auditlog.New(nil, zap.NewNop(), auditlog.Config{Mode: "db"})
	h := prompts.NewHandler(e.prompts, teamstore.New(e.db), e.users,
		usagestore.New(e.db), broken, zap.NewNop())

	body := `{"title":"Unaudited","text":"Still created."}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_CappedUserCanCreateTeamPrompt(t *testing.T) {
	e := setup(t)
	// The personal allowance is exhausted, but team prompts count only
	// against the team's limit.
	user := e.fixtures.CreateUserWithPromptCount(e.ctx, "Full", "full@example.com", models.PlanFree, 10)
	team := e.fixtures.CreateTeam(e.ctx, "Room Left", user.ID)

	body := `{"title":"Team Prompt","text":"x","visibility":"team","team_id":"` + team.ID.Hex() + `"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	fresh, err := e.users.GetByID(e.ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fresh.PromptCount != 11 {
		t.Errorf("prompt count: got %d, want 11", fresh.PromptCount)
	}
}

func TestHandleCreate_TeamMemberWithUnknownRole(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	odd := e.fixtures.CreateUser(e.ctx, "Odd", "odd@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Legacy Roles", owner.ID,
		testutil.Membership(odd.ID, "contributor"))

	body := `{"title":"Still Mine","text":"x","visibility":"team","team_id":"` + team.ID.Hex() + `"}`
	req := httptest.NewRequest("POST", "/prompts", strings.NewReader(body))
	req = asUser(req, odd)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}
