package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/models"
)

func loadedMain(t *testing.T, admin bool) (*Main, *fakeGateway) {
	t.Helper()
	gw := newFake()
	gw.products = catalogue()
	gw.categories = []models.Category{{ID: 1, Name: "Seeds"}, {ID: 2, Name: "Trees"}}
	gw.cart = []models.CartEntry{{ID: 1, Product: gw.products[2], Quantity: 2}}
	gw.orders = []models.Order{{ID: 10, Status: models.OrderStatusCreated}}
	m := NewMain(gw, signedIn(admin))
	require.NoError(t, m.Load(context.Background()))
	gw.calls = nil
	return m, gw
}

func TestLoadSequenceForUser(t *testing.T) {
	gw := newFake()
	m := NewMain(gw, signedIn(false))
	assert.True(t, m.Loading())

	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, []string{"Products", "Categories", "Carts", "UserOrders"}, gw.Calls())
	assert.False(t, m.Loading())
}

func TestLoadSequenceForAdmin(t *testing.T) {
	gw := newFake()
	m := NewMain(gw, signedIn(true))

	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, []string{"Products", "Categories", "Carts", "AllOrders"}, gw.Calls())
}

func TestLoadHTTPFailureContinues(t *testing.T) {
	gw := newFake()
	gw.categories = []models.Category{{ID: 1, Name: "Seeds"}}
	gw.errs["Products"] = &api.HTTPError{StatusCode: http.StatusInternalServerError, Body: "db down"}
	m := NewMain(gw, signedIn(false))

	require.Error(t, m.Load(context.Background()))

	assert.Equal(t, []string{"Products", "Categories", "Carts", "UserOrders"}, gw.Calls())
	assert.Equal(t, "Loading failed: db down", m.Message())
	assert.Len(t, m.Categories(), 1)
	assert.False(t, m.Loading())
}

func TestLoadNetworkFailureStops(t *testing.T) {
	gw := newFake()
	gw.errs["Categories"] = &api.NetworkError{Op: "do request", Err: errors.New("no route to host")}
	m := NewMain(gw, signedIn(false))

	require.Error(t, m.Load(context.Background()))
	assert.Equal(t, []string{"Products", "Categories"}, gw.Calls())
	assert.Equal(t, "Network error: no route to host", m.Message())
}

func TestFilterApply(t *testing.T) {
	products := catalogue()

	names := func(ps []models.Product) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Tomato seeds", "Fertilizer", "apple sapling"}, names(Filter{}.Apply(products)))
	assert.Equal(t, []string{"apple sapling", "Fertilizer", "Tomato seeds"}, names(Filter{Sort: SortPriceDesc}.Apply(products)))
	assert.Equal(t, []string{"apple sapling", "Fertilizer", "Tomato seeds"}, names(Filter{Sort: SortNameAsc}.Apply(products)))
	assert.Equal(t, []string{"Tomato seeds", "Fertilizer", "apple sapling"}, names(Filter{Sort: SortNameDesc}.Apply(products)))
	assert.Equal(t, []string{"Tomato seeds"}, names(Filter{Search: "TOMATO"}.Apply(products)))
	assert.Equal(t, []string{"Tomato seeds", "Fertilizer"}, names(Filter{CategoryID: 1}.Apply(products)))
	assert.Equal(t, []string{"apple sapling"}, names(Filter{FavoritesOnly: true}.Apply(products)))
	assert.Empty(t, Filter{Search: "seed", CategoryID: 2}.Apply(products))

	assert.Equal(t, "Tomato seeds", products[0].Name, "input must not be reordered")
}

func TestSelectCategoryToggles(t *testing.T) {
	m, _ := loadedMain(t, false)

	m.SelectCategory(2)
	assert.Equal(t, 2, m.Filter().CategoryID)
	assert.Len(t, m.Visible(), 1)

	m.SelectCategory(2)
	assert.Equal(t, 0, m.Filter().CategoryID)
	assert.Len(t, m.Visible(), 3)
}

func TestSortOptionCycles(t *testing.T) {
	s := SortPriceAsc
	for range SortOptions {
		s = s.Next()
	}
	assert.Equal(t, SortPriceAsc, s)
	assert.Equal(t, "Name: A-Z", SortNameAsc.Label())
}

func TestSetCountInCartFirstUnitUsesAdd(t *testing.T) {
	m, gw := loadedMain(t, false)

	require.NoError(t, m.SetCountInCart(context.Background(), 1, 1))

	assert.Equal(t, []string{"AddToCart[1 1]", "Carts"}, gw.Calls())
	p, _ := m.Product(1)
	assert.Equal(t, 1, p.CountInCart)
}

func TestSetCountInCartLaterUnitsUseUpdate(t *testing.T) {
	m, gw := loadedMain(t, false)

	require.NoError(t, m.Increment(context.Background(), 3))
	assert.Equal(t, []string{"UpdateCartQuantity[3 3]", "Carts"}, gw.Calls())
	p, _ := m.Product(3)
	assert.Equal(t, 3, p.CountInCart)
}

func TestSetCountInCartSameValueIsNoop(t *testing.T) {
	m, gw := loadedMain(t, false)

	require.NoError(t, m.SetCountInCart(context.Background(), 3, 2))
	assert.Empty(t, gw.Calls())
}

func TestIncrementCappedAtStock(t *testing.T) {
	m, gw := loadedMain(t, false)
	ctx := context.Background()

	require.NoError(t, m.Increment(ctx, 2))
	err := m.Increment(ctx, 2)

	assert.ErrorIs(t, err, ErrStockLimit)
	assert.Equal(t, "not enough stock", m.Message())
	assert.Equal(t, []string{"AddToCart[2 1]", "Carts"}, gw.Calls())
	p, _ := m.Product(2)
	assert.Equal(t, 1, p.CountInCart)
}

func TestDecrementAtZeroIsNoop(t *testing.T) {
	m, gw := loadedMain(t, false)

	require.NoError(t, m.Decrement(context.Background(), 1))
	assert.Empty(t, gw.Calls())
}

func TestFailedMutationKeepsLocalState(t *testing.T) {
	m, gw := loadedMain(t, false)
	gw.errs["UpdateCartQuantity"] = &api.HTTPError{StatusCode: 400, Body: "nope"}

	require.Error(t, m.Increment(context.Background(), 3))

	p, _ := m.Product(3)
	assert.Equal(t, 2, p.CountInCart)
	assert.Equal(t, "Cart update failed: nope", m.Message())
}

func TestToggleFavorite(t *testing.T) {
	m, gw := loadedMain(t, false)

	require.NoError(t, m.ToggleFavorite(context.Background(), 1))
	p, _ := m.Product(1)
	assert.True(t, p.Favorite)

	gw.errs["ToggleFavorite"] = &api.HTTPError{StatusCode: 500}
	require.Error(t, m.ToggleFavorite(context.Background(), 1))
	p, _ = m.Product(1)
	assert.True(t, p.Favorite)
}

func TestLogoutDropsLists(t *testing.T) {
	m, _ := loadedMain(t, false)

	require.NoError(t, m.Logout())
	assert.Empty(t, m.Products())
	assert.Empty(t, m.Orders())
	assert.Equal(t, "", m.Username())
}
