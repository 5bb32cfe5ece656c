package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tdmsuite/insights/internal/config"
)

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
}

func doCachedRequest(t *testing.T, h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/plans")
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestResponseCacheHit(t *testing.T) {
	rdb := testRedis(t)

	calls := 0
	h := NewResponseCache(cacheConfig(), rdb)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"plans": calls})
	})

	first := doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first request X-Cache = %q, want MISS", first.Header().Get("X-Cache"))
	}

	second := doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second request X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if got := second.Header().Get(echo.HeaderContentType); got != first.Header().Get(echo.HeaderContentType) {
		t.Fatalf("cached content type differs: %q", got)
	}
}

func TestResponseCacheSkipsUncachedMethods(t *testing.T) {
	rdb := testRedis(t)

	calls := 0
	h := NewResponseCache(cacheConfig(), rdb)(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	doCachedRequest(t, h, http.MethodPost, "/v1/plans")
	doCachedRequest(t, h, http.MethodPost, "/v1/plans")
	if calls != 2 {
		t.Fatalf("POST requests were cached: %d calls", calls)
	}
}

func TestResponseCacheSkipsErrorResponses(t *testing.T) {
	rdb := testRedis(t)

	calls := 0
	h := NewResponseCache(cacheConfig(), rdb)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "warming up"})
	})

	doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	second := doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	if second.Header().Get("X-Cache") == "HIT" {
		t.Fatal("non-200 response was served from cache")
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestResponseCacheDisabledPassesThrough(t *testing.T) {
	calls := 0
	h := NewResponseCache(config.CacheConfig{Enabled: false}, testRedis(t))(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	doCachedRequest(t, h, http.MethodGet, "/v1/plans")
	if calls != 2 {
		t.Fatalf("disabled cache still cached: %d calls", calls)
	}
}
