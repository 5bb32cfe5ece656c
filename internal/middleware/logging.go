package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog/log"
)

// RequestLogger emits one structured log line per request: method, path,
// status, latency and the session acting, when one is authenticated.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }

            ev := log.Info()
            if c.Response().Status >= 500 {
                ev = log.Error()
            }
            ev.Str("method", c.Request().Method).
                Str("path", c.Request().URL.Path).
                Int("status", c.Response().Status).
                Dur("latency", time.Since(start)).
                Str("session", currentSessionID(c)).
                Msg("request")
            return nil
        }
    }
}
