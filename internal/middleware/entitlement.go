package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/tdmsuite/insights/internal/session"
)

// RequirePro returns a middleware that enforces the paid entitlement for
// the current session.  The reason string is surfaced verbatim to the
// caller so the denial explains what to do about it.  The gate runs before
// the wrapped handler, so a denied request has no partial side effects.
// It assumes SessionAuth already stored the session ID in the context
// under the key "session_id".
func RequirePro(store *session.Store, reason string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            sid, ok := c.Get("session_id").(string)
            if !ok || sid == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
            }
            if !store.IsPro(sid) {
                // Expected control flow for free-tier sessions, not a
                // defect: the caller upgrades and resubmits.
                return c.JSON(http.StatusForbidden, echo.Map{
                    "error":  "entitlement_required",
                    "reason": reason,
                })
            }
            return next(c)
        }
    }
}
