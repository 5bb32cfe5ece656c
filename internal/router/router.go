package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/tdmsuite/insights/internal/config"
    "github.com/tdmsuite/insights/internal/handler"    // import the handlers that implement business logic
    "github.com/tdmsuite/insights/internal/middleware" // import middleware for session auth and the entitlement gate
    "github.com/tdmsuite/insights/internal/session"
)

// exportGateReason is what a free-tier session sees when it hits the export
// endpoint.  The wording is user-facing copy, kept here next to the route
// that uses it.
const exportGateReason = "Upgrade to Pro to export analytics."

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems probe this endpoint.
    e.GET("/healthz", handler.Health)
}

// RegisterSession registers session lifecycle routes.  Creating a session is
// unauthenticated (it is how a client obtains its token); everything else
// requires the session token issued at creation.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler, jwtSecret string) {
    // POST /v1/session mints a fresh session and its token handle.
    e.POST("/v1/session", s.Create)

    // Session-scoped operations live under the same prefix behind
    // SessionAuth, which extracts session_id/user_id into the context.
    g := e.Group("/v1/session")
    g.Use(middleware.SessionAuth(jwtSecret))
    g.GET("/me", s.Me)
    g.POST("/upgrade", s.Upgrade)
    g.POST("/downgrade", s.Downgrade)
}

// RegisterInsights registers the analytics upload endpoints.  Both require
// an authenticated session; export additionally passes the entitlement
// gate before the handler runs, so denied requests have no side effects.
func RegisterInsights(e *echo.Echo, h *handler.InsightsHandler, jwtSecret string, store *session.Store) {
    g := e.Group("/v1/insights")
    g.Use(middleware.SessionAuth(jwtSecret))
    g.POST("/analyze", h.Analyze)
    g.POST("/export", h.Export, middleware.RequirePro(store, exportGateReason))
}

// RegisterPlans registers the static reference endpoints.  The GET routes
// sit behind the Redis response cache since their payloads are fixed per
// process; the simulator is a POST and bypasses it.
func RegisterPlans(e *echo.Echo, p *handler.PlanHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
    cache := middleware.NewResponseCache(cacheCfg, rdb)
    e.GET("/v1/plans", p.List, cache)
    e.GET("/v1/plans/revenue-models", p.RevenueModels, cache)
    e.POST("/v1/plans/simulate", p.Simulate)
}

// RegisterAdmin registers the operator-only audit listing.  The handler
// checks the admin key itself; the route is simply absent when no admin
// key hash is configured.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, cfg config.Config) {
    if cfg.AdminKeyHash == "" {
        return
    }
    e.GET("/v1/admin/audit", a.ListAudit)
}
