package controller

import (
	"context"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/models"
)

// Gateway is the part of the REST API the screens drive. *api.Client satisfies it.
type Gateway interface {
	SignUp(ctx context.Context, p models.SignUpParams) (*models.JwtResponse, error)
	SignIn(ctx context.Context, p models.SignInParams) (*models.JwtResponse, error)

	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (*models.ProductDetails, error)
	AddToCart(ctx context.Context, productID, quantity int) error
	UpdateCartQuantity(ctx context.Context, productID, quantity int) error
	CreateReview(ctx context.Context, productID, rating int, comment string) error
	ToggleFavorite(ctx context.Context, productID int) error

	AllOrders(ctx context.Context) ([]models.Order, error)
	UserOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, address, phone string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error

	Categories(ctx context.Context) ([]models.Category, error)
	Carts(ctx context.Context) ([]models.CartEntry, error)
}

var _ Gateway = (*api.Client)(nil)
