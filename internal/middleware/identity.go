package middleware

// identity.go defines helper functions shared across middleware files:
// extraction of the session ID and user identifier that SessionAuth stored
// in the Echo context.  When no session is present, "anon" is returned so
// rate-limit keys and audit actors always have a value.

import "github.com/labstack/echo/v4"

// currentSessionID extracts the session ID from context, or "anon".
func currentSessionID(c echo.Context) string {
    if v := c.Get("session_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}

// currentUserID extracts the opaque user identifier from context, or "anon".
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}
