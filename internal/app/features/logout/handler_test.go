package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baudien321/promptpro/internal/app/features/logout"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestHandleLogout(t *testing.T) {
	sm, err := auth.NewManager("test-session-key-that-is-long-enough", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	h := logout.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()

	h.HandleLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	// The session cookie is expired.
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected an expired session cookie")
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
}
