package handler

import (
    "context"  // carries cancellation into the audit publisher
    "net/http" // HTTP status codes and primitives
    "time"     // token expiry formatting

    "github.com/google/uuid"      // session identifiers
    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/tdmsuite/insights/internal/audit"
    "github.com/tdmsuite/insights/internal/config"
    "github.com/tdmsuite/insights/internal/session"
    audit_publisher "github.com/tdmsuite/insights/internal/service"
    "github.com/tdmsuite/insights/internal/utils"
)

// SessionHandler bundles dependencies for session endpoints.
type SessionHandler struct {
    Cfg   config.Config
    Store *session.Store
    // Audit publishes an audit event.  Overridable in tests; failures are
    // ignored so the broker can never block a session action.
    Audit func(ctx context.Context, ev audit.Event) error
}

func NewSessionHandler(cfg config.Config, store *session.Store) *SessionHandler {
    return &SessionHandler{Cfg: cfg, Store: store, Audit: audit_publisher.PublishEvent}
}

// ----- DTOs -----

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type sessionPart struct {
    UserID string `json:"user_id"`
    Pro    bool   `json:"pro"`
}
type sessionResp struct {
    Session sessionPart `json:"session"`
    Access  tokenPart   `json:"access"`
}

// Create mints a new session: a random session ID, an opaque free-tier
// entitlement record, and the signed token handle the client presents on
// every later call.
func (h *SessionHandler) Create(c echo.Context) error {
    sid := uuid.NewString()
    rec := h.Store.Ensure(sid)

    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, sid, rec.UserID, h.Cfg.SessionTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    _ = h.Audit(c.Request().Context(), audit.NewEvent(rec.UserID, "session.created", ""))

    return c.JSON(http.StatusCreated, sessionResp{
        Session: sessionPart{UserID: rec.UserID, Pro: rec.Pro},
        Access:  tokenPart{Token: tok.Token, Expires: tok.Exp},
    })
}

// Me returns the entitlement state for the current session.  A session the
// store has never seen (e.g. after a restart) is lazily re-initialized at
// the free tier rather than rejected; the token is still the valid handle.
func (h *SessionHandler) Me(c echo.Context) error {
    sid := c.Get("session_id").(string)
    rec := h.Store.Ensure(sid)
    return c.JSON(http.StatusOK, sessionPart{UserID: rec.UserID, Pro: rec.Pro})
}

// Upgrade grants the paid entitlement for the current session, effective
// immediately.
func (h *SessionHandler) Upgrade(c echo.Context) error {
    sid := c.Get("session_id").(string)
    rec := h.Store.Upgrade(sid)
    _ = h.Audit(c.Request().Context(), audit.NewEvent(rec.UserID, "entitlement.upgraded", ""))
    return c.JSON(http.StatusOK, sessionPart{UserID: rec.UserID, Pro: rec.Pro})
}

// Downgrade revokes the paid entitlement for the current session.
func (h *SessionHandler) Downgrade(c echo.Context) error {
    sid := c.Get("session_id").(string)
    rec := h.Store.Downgrade(sid)
    _ = h.Audit(c.Request().Context(), audit.NewEvent(rec.UserID, "entitlement.downgraded", ""))
    return c.JSON(http.StatusOK, sessionPart{UserID: rec.UserID, Pro: rec.Pro})
}
