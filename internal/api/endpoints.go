package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diplomas-2025/agro-market/internal/models"
)

func (c *Client) SignUp(ctx context.Context, p models.SignUpParams) (*models.JwtResponse, error) {
	var out models.JwtResponse
	if err := c.do(ctx, http.MethodPost, "users/security/sign-up", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, p models.SignInParams) (*models.JwtResponse, error) {
	var out models.JwtResponse
	if err := c.do(ctx, http.MethodPost, "users/security/sign-in", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "base/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int) (*models.ProductDetails, error) {
	var out models.ProductDetails
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("base/products/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, productID, quantity int) error {
	q := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("base/products/%d/cart", productID), q, nil, nil)
}

// UpdateCartQuantity sets the absolute quantity; 0 removes the entry server-side.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID, quantity int) error {
	q := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("base/products/%d/cart", productID), q, nil, nil)
}

func (c *Client) CreateReview(ctx context.Context, productID, rating int, comment string) error {
	q := url.Values{
		"rating":  {strconv.Itoa(rating)},
		"comment": {comment},
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("base/products/%d/review", productID), q, nil, nil)
}

func (c *Client) ToggleFavorite(ctx context.Context, productID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("base/products/%d/favorite", productID), nil, nil, nil)
}

// AllOrders lists every order; the backend only serves it to admins.
func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "base/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "base/orders/user", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, address, phone string) (*models.Order, error) {
	q := url.Values{
		"address": {address},
		"phone":   {phone},
	}
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "base/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	q := url.Values{"status": {status.String()}}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("base/orders/%d", orderID), q, nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "base/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Carts(ctx context.Context) ([]models.CartEntry, error) {
	var out []models.CartEntry
	if err := c.do(ctx, http.MethodGet, "base/carts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
