package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/service"
	"github.com/diplomas-2025/agro-market/internal/models"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.sign_up")

	var req models.SignUpParams
	if err := c.Bind(&req); err != nil {
		l.Warn("sign_up_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.SignUp(ctx, req)
	if err != nil {
		return toHTTP(l, "sign_up_error", err)
	}
	l.Info("sign_up_successful", "user_id", res.UserID)
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.sign_in")

	var req models.SignInParams
	if err := c.Bind(&req); err != nil {
		l.Warn("sign_in_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.SignIn(ctx, req)
	if err != nil {
		return toHTTP(l, "sign_in_error", err)
	}
	l.Info("sign_in_successful", "user_id", res.UserID, "is_admin", res.IsAdmin)
	return c.JSON(http.StatusOK, res)
}
