package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/tdmsuite/insights/internal/config"
    "github.com/tdmsuite/insights/internal/repository"
    "github.com/tdmsuite/insights/internal/utils"
)

// AdminHandler exposes the persisted audit trail to operators.  Access is
// guarded by a shared key whose bcrypt hash lives in configuration; the
// plain key travels in the X-Admin-Key header.
type AdminHandler struct {
    Cfg   config.Config
    Audit *repository.AuditRepo
}

func NewAdminHandler(cfg config.Config, audit *repository.AuditRepo) *AdminHandler {
    return &AdminHandler{Cfg: cfg, Audit: audit}
}

type auditEventPart struct {
    ID         uint64    `json:"id"`
    OccurredAt time.Time `json:"occurred_at"`
    Actor      string    `json:"actor"`
    Action     string    `json:"action"`
    Detail     string    `json:"detail,omitempty"`
}

// ListAudit returns the newest audit events, capped by the limit query
// parameter (default 50, max 500).
func (h *AdminHandler) ListAudit(c echo.Context) error {
    if h.Cfg.AdminKeyHash == "" ||
        !utils.VerifyAdminKey(h.Cfg.AdminKeyHash, c.Request().Header.Get("X-Admin-Key")) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin key"})
    }
    if h.Audit == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "audit storage unavailable"})
    }

    limit := 50
    if s := c.QueryParam("limit"); s != "" {
        n, err := strconv.Atoi(s)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
        }
        limit = n
    }
    if limit > 500 {
        limit = 500
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    events, err := h.Audit.ListRecent(ctx, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    out := make([]auditEventPart, 0, len(events))
    for _, ev := range events {
        out = append(out, auditEventPart{
            ID:         ev.ID,
            OccurredAt: ev.OccurredAt,
            Actor:      ev.Actor,
            Action:     ev.Action,
            Detail:     ev.Detail,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"events": out})
}
