package comments_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baudien321/promptpro/internal/app/features/comments"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	commentstore "github.com/baudien321/promptpro/internal/app/store/comments"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/baudien321/promptpro/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	h        *comments.Handler
	fixtures *testutil.Fixtures
	comments *commentstore.Store
	ctx      context.Context
}

func setup(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	cs := commentstore.New(db)
	al := auditlog.New(audit.New(db), zap.NewNop(), auditlog.Config{Mode: "db"})
	return &env{
		h:        comments.NewHandler(cs, promptstore.New(db), teamstore.New(db), al, zap.NewNop()),
		fixtures: testutil.NewFixtures(t, db),
		comments: cs,
		ctx:      ctx,
	}
}

func asUser(req *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(req, &auth.SessionUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email})
}

func TestHandleCreate_StripsMarkup(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Public", user.ID, models.VisibilityPublic, nil)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/comments",
		strings.NewReader(`{"content":"<b>Great</b> prompt<script>alert(1)</script>"}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var cm models.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &cm); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if cm.Content != "Great prompt" {
		t.Errorf("content: got %q, want %q", cm.Content, "Great prompt")
	}
}

func TestHandleCreate_EmptyContent(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Public", user.ID, models.VisibilityPublic, nil)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/comments",
		strings.NewReader(`{"content":"   "}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleCreate_TeamPromptNonMember(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	outsider := e.fixtures.CreateUser(e.ctx, "Outsider", "out@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Internal", owner.ID, models.VisibilityTeam, &team.ID)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/comments",
		strings.NewReader(`{"content":"hi"}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, outsider)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	// Outsiders cannot even learn the prompt exists.
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleCreate_TeamPromptMember(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Internal", owner.ID, models.VisibilityTeam, &team.ID)

	req := httptest.NewRequest("POST", "/prompts/"+prompt.ID.Hex()+"/comments",
		strings.NewReader(`{"content":"useful"}`))
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()

	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestServeList_PrivatePromptHidden(t *testing.T) {
	e := setup(t)
	author := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	other := e.fixtures.CreateUser(e.ctx, "Other", "other@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Secret", author.ID, models.VisibilityPrivate, nil)
	e.fixtures.CreateComment(e.ctx, prompt.ID, author.ID, "note to self")

	req := httptest.NewRequest("GET", "/prompts/"+prompt.ID.Hex()+"/comments", nil)
	req = testutil.WithChiURLParam(req, "id", prompt.ID.Hex())
	req = asUser(req, other)
	rec := httptest.NewRecorder()

	e.h.ServeList(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleDelete_Author(t *testing.T) {
	e := setup(t)
	user := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Public", user.ID, models.VisibilityPublic, nil)
	cm := e.fixtures.CreateComment(e.ctx, prompt.ID, user.ID, "delete me")

	req := httptest.NewRequest("DELETE", "/comments/"+cm.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", cm.ID.Hex())
	req = asUser(req, user)
	rec := httptest.NewRecorder()

	e.h.HandleDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
	}
}

func TestHandleDelete_StrangerForbidden(t *testing.T) {
	e := setup(t)
	author := e.fixtures.CreateUser(e.ctx, "Author", "author@example.com", models.PlanFree)
	stranger := e.fixtures.CreateUser(e.ctx, "Stranger", "stranger@example.com", models.PlanFree)
	prompt := e.fixtures.CreatePrompt(e.ctx, "Public", author.ID, models.VisibilityPublic, nil)
	cm := e.fixtures.CreateComment(e.ctx, prompt.ID, author.ID, "mine")

	req := httptest.NewRequest("DELETE", "/comments/"+cm.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", cm.ID.Hex())
	req = asUser(req, stranger)
	rec := httptest.NewRecorder()

	e.h.HandleDelete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleDelete_AdminModeratesTeamComment(t *testing.T) {
	e := setup(t)
	owner := e.fixtures.CreateUser(e.ctx, "Owner", "owner@example.com", models.PlanFree)
	member := e.fixtures.CreateUser(e.ctx, "Member", "member@example.com", models.PlanFree)
	admin := e.fixtures.CreateUser(e.ctx, "Admin", "admin@example.com", models.PlanFree)
	team := e.fixtures.CreateTeam(e.ctx, "Team", owner.ID,
		testutil.Membership(member.ID, models.RoleMember),
		testutil.Membership(admin.ID, models.RoleAdmin))
	prompt := e.fixtures.CreatePrompt(e.ctx, "Internal", owner.ID, models.VisibilityTeam, &team.ID)
	cm := e.fixtures.CreateComment(e.ctx, prompt.ID, member.ID, "off topic")

	req := httptest.NewRequest("DELETE", "/comments/"+cm.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", cm.ID.Hex())
	req = asUser(req, admin)
	rec := httptest.NewRecorder()

	e.h.HandleDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
	}
	if _, err := e.comments.GetByID(e.ctx, cm.ID); err == nil {
		t.Error("expected comment to be deleted")
	}
}
