package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/auth"
)

const (
	ctxUserID  = "user_id"
	ctxIsAdmin = "is_admin"
)

type BearerAuth struct {
	Tokens *auth.Issuer
}

// RequireAuth accepts requests with a valid "Authorization: Bearer" access token.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("handler", "bearer_auth")

		h := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			l.Warn("auth_error", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Tokens.ParseAccess(strings.TrimSpace(token))
		if err != nil {
			l.Warn("auth_error", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		id, err := claims.UserID()
		if err != nil {
			l.Warn("auth_error", "status", 401, "reason", "bad subject", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(ctxUserID, id)
		c.Set(ctxIsAdmin, claims.IsAdmin())
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isAdmin(c) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func userID(c echo.Context) int {
	id, _ := c.Get(ctxUserID).(int)
	return id
}

func isAdmin(c echo.Context) bool {
	v, _ := c.Get(ctxIsAdmin).(bool)
	return v
}
