package httpserver

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diplomas-2025/agro-market/internal/logging"
)

// RequestLogger puts a request-scoped logger into the context and logs the
// outcome. The storefront client sends its own X-Request-ID; requests without
// one get the id assigned by echo's RequestID middleware, which must run first.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			fromClient := rid != ""
			if !fromClient {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
				"request_id", rid,
				"client_request_id", fromClient,
			)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			dur := time.Since(start)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			// set by RequireAuth on /base routes
			if uid := userID(c); uid != 0 {
				l = l.With("user_id", uid, "is_admin", isAdmin(c))
			}

			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", dur.Milliseconds()}
			switch {
			case status >= 500:
				l.Error("request_completed", append(attrs, "error", err)...)
			case status >= 400:
				l.Warn("request_completed", append(attrs, "reason", err)...)
			default:
				l.Info("request_completed", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}
