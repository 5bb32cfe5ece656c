package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tdmsuite/insights/internal/session"
)

func gateContext(sid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/insights/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sid != "" {
		c.Set("session_id", sid)
	}
	return c, rec
}

func TestRequireProBlocksFreeTier(t *testing.T) {
	store := session.NewStore()
	store.Ensure("sess-free")

	called := false
	h := RequirePro(store, "Upgrade to Pro to export analytics.")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c, rec := gateContext("sess-free")
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if called {
		t.Fatal("handler ran for a free-tier session")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "entitlement_required" {
		t.Fatalf("error = %q", body["error"])
	}
	if body["reason"] != "Upgrade to Pro to export analytics." {
		t.Fatalf("reason = %q", body["reason"])
	}
}

func TestRequireProPassesProTier(t *testing.T) {
	store := session.NewStore()
	store.Upgrade("sess-pro")

	called := false
	h := RequirePro(store, "upgrade")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	c, rec := gateContext("sess-pro")
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatal("handler did not run for a pro session")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireProMissingSession(t *testing.T) {
	h := RequirePro(session.NewStore(), "upgrade")(func(c echo.Context) error {
		t.Fatal("handler must not run without a session")
		return nil
	})

	c, rec := gateContext("")
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
