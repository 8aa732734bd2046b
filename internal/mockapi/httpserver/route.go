package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler *AuthHTTP
	ShopHandler *ShopHTTP
	Auth        *BearerAuth
	// Prefix is the mount point of the API, "/agro-market" by default.
	Prefix string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	prefix := d.Prefix
	if prefix == "" {
		prefix = "/agro-market"
	}
	root := e.Group(prefix)

	security := root.Group("/users/security")
	security.POST("/sign-up", d.AuthHandler.SignUp)
	security.POST("/sign-in", d.AuthHandler.SignIn)

	base := root.Group("/base", d.Auth.RequireAuth)
	base.GET("/products", d.ShopHandler.Products)
	base.GET("/products/:id", d.ShopHandler.Product)
	base.POST("/products/:id/cart", d.ShopHandler.AddToCart)
	base.PUT("/products/:id/cart", d.ShopHandler.UpdateCart)
	base.POST("/products/:id/review", d.ShopHandler.CreateReview)
	base.POST("/products/:id/favorite", d.ShopHandler.ToggleFavorite)
	base.GET("/categories", d.ShopHandler.Categories)
	base.GET("/carts", d.ShopHandler.Carts)
	base.GET("/orders/user", d.ShopHandler.UserOrders)
	base.POST("/orders", d.ShopHandler.CreateOrder)
	base.GET("/orders", d.ShopHandler.AllOrders, RequireAdmin)
	base.PATCH("/orders/:id", d.ShopHandler.UpdateOrderStatus, RequireAdmin)
}
