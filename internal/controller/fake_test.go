package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/session"
)

// fakeGateway records calls and serves canned data.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	products   []models.Product
	categories []models.Category
	cart       []models.CartEntry
	orders     []models.Order
	details    map[int]*models.ProductDetails
	auth       *models.JwtResponse

	errs map[string]error
}

func newFake() *fakeGateway {
	return &fakeGateway{details: map[int]*models.ProductDetails{}, errs: map[string]error{}}
}

func (f *fakeGateway) record(name string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := name
	if len(args) > 0 {
		call = fmt.Sprintf("%s%v", name, args)
	}
	f.calls = append(f.calls, call)
	return f.errs[name]
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) SignUp(_ context.Context, p models.SignUpParams) (*models.JwtResponse, error) {
	if err := f.record("SignUp", p.Username, p.Email); err != nil {
		return nil, err
	}
	return f.auth, nil
}

func (f *fakeGateway) SignIn(_ context.Context, p models.SignInParams) (*models.JwtResponse, error) {
	if err := f.record("SignIn", p.Email); err != nil {
		return nil, err
	}
	return f.auth, nil
}

func (f *fakeGateway) Products(context.Context) ([]models.Product, error) {
	if err := f.record("Products"); err != nil {
		return nil, err
	}
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeGateway) Product(_ context.Context, id int) (*models.ProductDetails, error) {
	if err := f.record("Product", id); err != nil {
		return nil, err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("no product %d", id)
	}
	cp := *d
	cp.Reviews = append([]models.Review(nil), d.Reviews...)
	return &cp, nil
}

func (f *fakeGateway) AddToCart(_ context.Context, productID, quantity int) error {
	return f.record("AddToCart", productID, quantity)
}

func (f *fakeGateway) UpdateCartQuantity(_ context.Context, productID, quantity int) error {
	return f.record("UpdateCartQuantity", productID, quantity)
}

func (f *fakeGateway) CreateReview(_ context.Context, productID, rating int, comment string) error {
	return f.record("CreateReview", productID, rating, comment)
}

func (f *fakeGateway) ToggleFavorite(_ context.Context, productID int) error {
	return f.record("ToggleFavorite", productID)
}

func (f *fakeGateway) AllOrders(context.Context) ([]models.Order, error) {
	if err := f.record("AllOrders"); err != nil {
		return nil, err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeGateway) UserOrders(context.Context) ([]models.Order, error) {
	if err := f.record("UserOrders"); err != nil {
		return nil, err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeGateway) CreateOrder(_ context.Context, address, phone string) (*models.Order, error) {
	if err := f.record("CreateOrder", address, phone); err != nil {
		return nil, err
	}
	return &models.Order{ID: 100, Status: models.OrderStatusCreated, Address: address, Phone: phone}, nil
}

func (f *fakeGateway) UpdateOrderStatus(_ context.Context, orderID int, status models.OrderStatus) error {
	return f.record("UpdateOrderStatus", orderID, status)
}

func (f *fakeGateway) Categories(context.Context) ([]models.Category, error) {
	if err := f.record("Categories"); err != nil {
		return nil, err
	}
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeGateway) Carts(context.Context) ([]models.CartEntry, error) {
	if err := f.record("Carts"); err != nil {
		return nil, err
	}
	return append([]models.CartEntry(nil), f.cart...), nil
}

func signedIn(admin bool) *session.Manager {
	m := session.NewManager(session.NewMemoryStore())
	_ = m.Persist(models.JwtResponse{UserID: 7, AccessToken: "tok", RefreshToken: "ref", IsAdmin: admin, Username: "olga"})
	return m
}

func catalogue() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Tomato seeds", Price: 120, Stock: 3, CategoryID: 1},
		{ID: 2, Name: "apple sapling", Price: 900, Stock: 1, CategoryID: 2, Favorite: true},
		{ID: 3, Name: "Fertilizer", Price: 450, Stock: 10, CategoryID: 1, CountInCart: 2},
	}
}
