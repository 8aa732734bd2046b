package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
	"github.com/diplomas-2025/agro-market/internal/mockapi/events"
	"github.com/diplomas-2025/agro-market/internal/mockapi/repo"
	"github.com/diplomas-2025/agro-market/internal/models"
)

type ShopService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return err
}

// Products lists the catalogue with the caller's cart counts and favorites.
func (s *ShopService) Products(ctx context.Context, userID int) ([]models.Product, error) {
	ps, err := s.Repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	counts, favs, err := s.personal(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Wire(counts[p.ID], favs[p.ID]))
	}
	return out, nil
}

func (s *ShopService) Product(ctx context.Context, userID, id int) (*models.ProductDetails, error) {
	p, err := s.Repo.Product(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	counts, favs, err := s.personal(ctx, userID)
	if err != nil {
		return nil, err
	}
	rs, err := s.Repo.Reviews(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews := make([]models.Review, 0, len(rs))
	for _, r := range rs {
		reviews = append(reviews, r.Wire())
	}
	return &models.ProductDetails{Product: p.Wire(counts[p.ID], favs[p.ID]), Reviews: reviews}, nil
}

func (s *ShopService) personal(ctx context.Context, userID int) (map[int]int, map[int]bool, error) {
	counts, err := s.Repo.CartQuantities(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	favs, err := s.Repo.FavoriteSet(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return counts, favs, nil
}

func (s *ShopService) Categories(ctx context.Context) ([]models.Category, error) {
	cs, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Wire())
	}
	return out, nil
}

func (s *ShopService) Cart(ctx context.Context, userID int) ([]models.CartEntry, error) {
	items, err := s.Repo.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	favs, err := s.Repo.FavoriteSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.CartEntry, 0, len(items))
	for _, it := range items {
		out = append(out, models.CartEntry{
			ID:       it.ID,
			Product:  it.Product.Wire(it.Quantity, favs[it.ProductID]),
			Quantity: it.Quantity,
		})
	}
	return out, nil
}

func (s *ShopService) AddToCart(ctx context.Context, userID, productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	qty, err := s.Repo.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return notFound(err, "product")
	}
	publish(ctx, s.Events, events.TopicCart, userID, "cart_item_added", map[string]any{"productId": productID, "quantity": qty})
	return nil
}

func (s *ShopService) SetCartQuantity(ctx context.Context, userID, productID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	qty, err := s.Repo.SetCartQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return notFound(err, "product")
	}
	typ := "cart_item_updated"
	if qty == 0 {
		typ = "cart_item_removed"
	}
	publish(ctx, s.Events, events.TopicCart, userID, typ, map[string]any{"productId": productID, "quantity": qty})
	return nil
}

func (s *ShopService) ToggleFavorite(ctx context.Context, userID, productID int) error {
	if _, err := s.Repo.Product(ctx, productID); err != nil {
		return notFound(err, "product")
	}
	_, err := s.Repo.ToggleFavorite(ctx, userID, productID)
	return err
}

func (s *ShopService) CreateReview(ctx context.Context, userID, productID, rating int, comment string) error {
	l := logging.FromContext(ctx).With("svc", "shop.create_review")
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if comment == "" {
		return fmt.Errorf("%w: comment is required", ErrValidation)
	}
	if _, err := s.Repo.Product(ctx, productID); err != nil {
		return notFound(err, "product")
	}
	exists, err := s.Repo.HasReview(ctx, userID, productID)
	if err != nil {
		return err
	}
	if exists {
		l.Warn("create_review_error", "status", 409, "reason", "already reviewed")
		return fmt.Errorf("%w: product already reviewed", ErrConflict)
	}
	return s.Repo.CreateReview(ctx, &domain.Review{UserID: userID, ProductID: productID, Rating: rating, Comment: comment})
}

func (s *ShopService) AllOrders(ctx context.Context, admin bool) ([]models.Order, error) {
	if !admin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	orders, err := s.Repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return wireOrders(orders), nil
}

func (s *ShopService) UserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	orders, err := s.Repo.UserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wireOrders(orders), nil
}

func (s *ShopService) CreateOrder(ctx context.Context, userID int, address, phone string) (*models.Order, error) {
	address, phone = strings.TrimSpace(address), strings.TrimSpace(phone)
	if address == "" || phone == "" {
		return nil, fmt.Errorf("%w: address and phone are required", ErrValidation)
	}
	o, err := s.Repo.CreateOrderFromCart(ctx, userID, string(models.OrderStatusCreated), address, phone)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
		}
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrder, userID, "order_created", map[string]any{"orderId": o.ID, "total": o.TotalPrice})
	w := o.Wire()
	return &w, nil
}

func (s *ShopService) UpdateOrderStatus(ctx context.Context, admin bool, orderID int, status string) error {
	if !admin {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	st, err := models.ParseOrderStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.Repo.UpdateOrderStatus(ctx, orderID, string(st)); err != nil {
		return notFound(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrder, 0, "order_status_changed", map[string]any{"orderId": orderID, "status": string(st)})
	return nil
}

func wireOrders(os []domain.Order) []models.Order {
	out := make([]models.Order, 0, len(os))
	for _, o := range os {
		out = append(out, o.Wire())
	}
	return out
}
