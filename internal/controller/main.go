package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/session"
)

// Main holds the lists shared by the Home, Cart and Orders tabs.
type Main struct {
	gw   Gateway
	sess *session.Manager

	mu         sync.RWMutex
	products   []models.Product
	categories []models.Category
	cart       []models.CartEntry
	orders     []models.Order
	filter     Filter
	loading    bool
	msg        string
}

func NewMain(gw Gateway, sess *session.Manager) *Main {
	return &Main{gw: gw, sess: sess, loading: true, filter: Filter{Sort: SortPriceAsc}}
}

// Load fetches products, categories, cart and orders one after another.
// A failed response leaves its list empty and the first failure is reported;
// a transport failure stops the sequence.
func (m *Main) Load(ctx context.Context) error {
	l := logging.FromContext(ctx).With("controller", "main.load")
	m.mu.Lock()
	m.loading = true
	m.msg = ""
	m.mu.Unlock()

	var first error
	keep := func(err error) bool {
		if err == nil {
			return true
		}
		if first == nil {
			first = err
		}
		var ne *api.NetworkError
		return !errors.As(err, &ne)
	}

	products, err := m.gw.Products(ctx)
	ok := keep(err)
	var categories []models.Category
	var cart []models.CartEntry
	var orders []models.Order
	if ok {
		categories, err = m.gw.Categories(ctx)
		ok = keep(err)
	}
	if ok {
		cart, err = m.gw.Carts(ctx)
		ok = keep(err)
	}
	if ok {
		if m.sess.IsAdmin() {
			orders, err = m.gw.AllOrders(ctx)
		} else {
			orders, err = m.gw.UserOrders(ctx)
		}
		keep(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
	m.categories = categories
	m.cart = cart
	m.orders = orders
	m.loading = false
	if first != nil {
		m.msg = Describe("Loading failed", first)
		l.Warn("load_failed", "reason", m.msg)
		return first
	}
	l.Debug("loaded", "products", len(products), "cart", len(cart), "orders", len(orders))
	return nil
}

func (m *Main) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Message is the last user-visible failure, empty after a successful action.
func (m *Main) Message() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.msg
}

func (m *Main) IsAdmin() bool { return m.sess.IsAdmin() }

func (m *Main) Username() string { return m.sess.Username() }

func (m *Main) Products() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Product(nil), m.products...)
}

func (m *Main) Categories() []models.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Category(nil), m.categories...)
}

func (m *Main) Cart() []models.CartEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.CartEntry(nil), m.cart...)
}

func (m *Main) Orders() []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Order(nil), m.orders...)
}

// Product returns the loaded product with the given id.
func (m *Main) Product(id int) (models.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.productIndex(id); i >= 0 {
		return m.products[i], true
	}
	return models.Product{}, false
}

// Logout clears the session and drops every loaded list.
func (m *Main) Logout() error {
	err := m.sess.Clear()
	m.mu.Lock()
	m.products, m.categories, m.cart, m.orders = nil, nil, nil, nil
	m.filter = Filter{Sort: SortPriceAsc}
	m.loading = true
	m.msg = ""
	m.mu.Unlock()
	return err
}

// fail records a failure under the lock held by the caller.
func (m *Main) fail(ctx context.Context, op, action string, err error) error {
	m.msg = Describe(action, err)
	logging.FromContext(ctx).Warn("action_failed", "controller", op, "reason", m.msg)
	return err
}

func (m *Main) setMessage(ctx context.Context, op, action string, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail(ctx, op, action, err)
}

func (m *Main) productIndex(id int) int {
	for i := range m.products {
		if m.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Main) cartIndex(productID int) int {
	for i := range m.cart {
		if m.cart[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
