package controller

import (
	"context"
	"sort"
	"strings"

	"github.com/diplomas-2025/agro-market/internal/models"
)

type SortOption int

const (
	SortPriceAsc SortOption = iota
	SortPriceDesc
	SortNameAsc
	SortNameDesc
)

var SortOptions = []SortOption{SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

func (s SortOption) Label() string {
	switch s {
	case SortPriceDesc:
		return "Price: high to low"
	case SortNameAsc:
		return "Name: A-Z"
	case SortNameDesc:
		return "Name: Z-A"
	default:
		return "Price: low to high"
	}
}

// Next cycles through SortOptions.
func (s SortOption) Next() SortOption {
	return SortOptions[(int(s)+1)%len(SortOptions)]
}

// Filter narrows the catalogue on the Home tab. CategoryID 0 means any category.
type Filter struct {
	Search        string
	CategoryID    int
	FavoritesOnly bool
	Sort          SortOption
}

// Apply returns the matching products in the requested order. The input is not modified.
func (f Filter) Apply(products []models.Product) []models.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.FavoritesOnly && !p.Favorite {
			continue
		}
		out = append(out, p)
	}

	var less func(a, b models.Product) bool
	switch f.Sort {
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case SortNameAsc:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	default:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (m *Main) Filter() Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *Main) SetSearch(term string) {
	m.mu.Lock()
	m.filter.Search = term
	m.mu.Unlock()
}

func (m *Main) SetSort(s SortOption) {
	m.mu.Lock()
	m.filter.Sort = s
	m.mu.Unlock()
}

// SelectCategory picks a category, or clears the selection when it is already picked.
func (m *Main) SelectCategory(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filter.CategoryID == id {
		m.filter.CategoryID = 0
		return
	}
	m.filter.CategoryID = id
}

func (m *Main) ToggleFavoritesOnly() {
	m.mu.Lock()
	m.filter.FavoritesOnly = !m.filter.FavoritesOnly
	m.mu.Unlock()
}

// Visible is the product grid after filtering and sorting.
func (m *Main) Visible() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter.Apply(m.products)
}

// SetCountInCart moves a product's cart quantity to value. The first unit goes
// through AddToCart, later changes through UpdateCartQuantity. The cart is
// refetched afterwards.
func (m *Main) SetCountInCart(ctx context.Context, productID, value int) error {
	const op, action = "home.set_count", "Cart update failed"
	p, ok := m.Product(productID)
	if !ok {
		return m.setMessage(ctx, op, action, ErrUnknownProduct)
	}
	if value < 0 {
		value = 0
	}
	if value == p.CountInCart {
		return nil
	}
	if value > p.CountInCart && value > p.Stock {
		return m.setMessage(ctx, op, action, ErrStockLimit)
	}

	var err error
	newCount := value
	if p.CountInCart <= 0 {
		err = m.gw.AddToCart(ctx, productID, 1)
		newCount = 1
	} else {
		err = m.gw.UpdateCartQuantity(ctx, productID, value)
	}
	if err != nil {
		return m.setMessage(ctx, op, action, err)
	}

	m.mu.Lock()
	if i := m.productIndex(productID); i >= 0 {
		m.products[i].CountInCart = newCount
	}
	m.msg = ""
	m.mu.Unlock()

	return m.refreshCart(ctx)
}

func (m *Main) Increment(ctx context.Context, productID int) error {
	p, ok := m.Product(productID)
	if !ok {
		return m.setMessage(ctx, "home.increment", "Cart update failed", ErrUnknownProduct)
	}
	return m.SetCountInCart(ctx, productID, p.CountInCart+1)
}

func (m *Main) Decrement(ctx context.Context, productID int) error {
	p, ok := m.Product(productID)
	if !ok {
		return m.setMessage(ctx, "home.decrement", "Cart update failed", ErrUnknownProduct)
	}
	if p.CountInCart <= 0 {
		return nil
	}
	return m.SetCountInCart(ctx, productID, p.CountInCart-1)
}

func (m *Main) ToggleFavorite(ctx context.Context, productID int) error {
	if err := m.gw.ToggleFavorite(ctx, productID); err != nil {
		return m.setMessage(ctx, "home.toggle_favorite", "Favorite update failed", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.productIndex(productID); i >= 0 {
		m.products[i].Favorite = !m.products[i].Favorite
	}
	m.msg = ""
	return nil
}

func (m *Main) refreshCart(ctx context.Context) error {
	cart, err := m.gw.Carts(ctx)
	if err != nil {
		return m.setMessage(ctx, "home.refresh_cart", "Loading cart failed", err)
	}
	m.mu.Lock()
	m.cart = cart
	m.mu.Unlock()
	return nil
}
