package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/service"
)

type ShopHTTP struct {
	Svc *service.ShopService
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func (h *ShopHTTP) Products(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	ps, err := h.Svc.Products(ctx, userID(c))
	if err != nil {
		return toHTTP(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *ShopHTTP) Product(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.Svc.Product(ctx, userID(c), id)
	if err != nil {
		return toHTTP(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ShopHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	qty, err := queryInt(c, "quantity")
	if err != nil {
		return err
	}
	if err := h.Svc.AddToCart(ctx, userID(c), id, qty); err != nil {
		return toHTTP(l, "add_to_cart_error", err)
	}
	l.Info("item added to cart", "product_id", id)
	return c.NoContent(http.StatusOK)
}

func (h *ShopHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	qty, err := queryInt(c, "quantity")
	if err != nil {
		return err
	}
	if err := h.Svc.SetCartQuantity(ctx, userID(c), id, qty); err != nil {
		return toHTTP(l, "update_cart_error", err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *ShopHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	rating, err := queryInt(c, "rating")
	if err != nil {
		return err
	}
	if err := h.Svc.CreateReview(ctx, userID(c), id, rating, c.QueryParam("comment")); err != nil {
		return toHTTP(l, "create_review_error", err)
	}
	l.Info("review created", "product_id", id)
	return c.NoContent(http.StatusOK)
}

func (h *ShopHTTP) ToggleFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.toggle")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.ToggleFavorite(ctx, userID(c), id); err != nil {
		return toHTTP(l, "toggle_favorite_error", err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *ShopHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.list")

	cs, err := h.Svc.Categories(ctx)
	if err != nil {
		return toHTTP(l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *ShopHTTP) Carts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "carts.list")

	items, err := h.Svc.Cart(ctx, userID(c))
	if err != nil {
		return toHTTP(l, "list_cart_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ShopHTTP) AllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.all")

	os, err := h.Svc.AllOrders(ctx, isAdmin(c))
	if err != nil {
		return toHTTP(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, os)
}

func (h *ShopHTTP) UserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.user")

	os, err := h.Svc.UserOrders(ctx, userID(c))
	if err != nil {
		return toHTTP(l, "list_user_orders_error", err)
	}
	return c.JSON(http.StatusOK, os)
}

func (h *ShopHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	o, err := h.Svc.CreateOrder(ctx, userID(c), c.QueryParam("address"), c.QueryParam("phone"))
	if err != nil {
		return toHTTP(l, "create_order_error", err)
	}
	l.Info("create_order_success", "order_id", o.ID)
	return c.JSON(http.StatusOK, o)
}

func (h *ShopHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.UpdateOrderStatus(ctx, isAdmin(c), id, c.QueryParam("status")); err != nil {
		return toHTTP(l, "update_order_status_error", err)
	}
	l.Info("order status updated", "order_id", id)
	return c.NoContent(http.StatusOK)
}
