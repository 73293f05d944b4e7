package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baudien321/promptpro/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager("0123456789abcdef0123456789abcdef", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestSignInThenLoad(t *testing.T) {
	m := newManager(t)

	// Sign in and capture the Set-Cookie header.
	signInReq := httptest.NewRequest("POST", "/login", nil)
	signInRec := httptest.NewRecorder()
	u := &auth.SessionUser{ID: "abc123", Name: "Test User", Email: "user@test.com"}
	if err := m.SignIn(signInRec, signInReq, u); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})
	req := httptest.NewRequest("GET", "/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after LoadSessionUser")
	}
	if got.ID != "abc123" || got.Email != "user@test.com" {
		t.Errorf("unexpected session user: %+v", got)
	}
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	m := newManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("GET", "/teams", nil)
	rec := httptest.NewRecorder()
	m.RequireSignedIn(next).ServeHTTP(rec, req)

	if called {
		t.Error("next handler should not run without a user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestRequireSignedIn_WithTestUser(t *testing.T) {
	m := newManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("GET", "/teams", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Name: "N", Email: "e@test.com"})
	m.RequireSignedIn(next).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("next handler should run with a user in context")
	}
}

func TestSignOutClearsSession(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	if err := m.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected an expired session cookie")
	}
}
