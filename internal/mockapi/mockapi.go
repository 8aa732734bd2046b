// Package mockapi is a development backend speaking the storefront REST contract.
package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/auth"
	"github.com/diplomas-2025/agro-market/internal/mockapi/events"
	"github.com/diplomas-2025/agro-market/internal/mockapi/httpserver"
	"github.com/diplomas-2025/agro-market/internal/mockapi/repo"
	"github.com/diplomas-2025/agro-market/internal/mockapi/service"
)

type Options struct {
	DB            *gorm.DB
	AccessSecret  []byte
	RefreshSecret []byte
	Events        events.Publisher
	Logger        *slog.Logger
	Prefix        string
}

// New migrates the schema and returns an echo instance with every route registered.
func New(ctx context.Context, o Options) (*echo.Echo, error) {
	if o.DB == nil {
		return nil, fmt.Errorf("mockapi: nil db")
	}
	if o.Events == nil {
		o.Events = events.Noop{}
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}

	r := repo.New(o.DB)
	if err := r.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("mockapi: migrate: %w", err)
	}

	tokens := &auth.Issuer{AccessSecret: o.AccessSecret, RefreshSecret: o.RefreshSecret}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpserver.PlainErrorHandler
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.RequestID())
	e.Use(httpserver.RequestLogger(o.Logger))
	e.Use(middleware.Recover())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokens, Events: o.Events}},
		ShopHandler: &httpserver.ShopHTTP{Svc: &service.ShopService{Repo: r, Events: o.Events}},
		Auth:        &httpserver.BearerAuth{Tokens: tokens},
		Prefix:      o.Prefix,
	})
	return e, nil
}
