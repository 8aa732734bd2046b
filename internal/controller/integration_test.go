package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/controller"
	"github.com/diplomas-2025/agro-market/internal/mockapi/mockapitest"
	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/session"
)

type harness struct {
	client *api.Client
	sess   *session.Manager
}

func newHarness(t *testing.T, srv *mockapitest.Server) harness {
	t.Helper()
	sess := session.NewManager(session.NewMemoryStore())
	c, err := api.New(api.Config{BaseURL: srv.BaseURL(), Tokens: sess})
	require.NoError(t, err)
	return harness{client: c, sess: sess}
}

func TestShoppingFlowAgainstBackend(t *testing.T) {
	srv := mockapitest.New(t)
	h := newHarness(t, srv)
	ctx := context.Background()

	auth := controller.NewAuth(h.client, h.sess)
	require.Equal(t, controller.StateUnauthenticated, auth.State())
	require.NoError(t, auth.SignUp(ctx, "nina", "nina@example.com", "pw"))
	require.Equal(t, controller.StateAuthenticated, auth.State())
	require.Equal(t, "nina", h.sess.Username())

	shop := controller.NewMain(h.client, h.sess)
	require.NoError(t, shop.Load(ctx))
	require.Len(t, shop.Products(), 9)
	require.Len(t, shop.Categories(), 4)
	assert.Empty(t, shop.Cart())
	assert.Empty(t, shop.Orders())

	require.NoError(t, shop.Increment(ctx, 1))
	require.NoError(t, shop.Increment(ctx, 1))
	require.NoError(t, shop.Increment(ctx, 4))
	p, _ := shop.Product(1)
	assert.Equal(t, 2, p.CountInCart)
	require.Len(t, shop.Cart(), 2)
	assert.InDelta(t, 89*2+320, shop.CartTotal(), 0.001)

	require.NoError(t, shop.CartDecrement(ctx, 4))
	require.Len(t, shop.Cart(), 1)
	p, _ = shop.Product(4)
	assert.Zero(t, p.CountInCart)

	assert.ErrorIs(t, shop.Checkout(ctx, "", ""), controller.ErrBlankCheckout)
	require.NoError(t, shop.Checkout(ctx, "Sadovaya 3", "+7 902"))
	assert.Empty(t, shop.Cart())
	require.Len(t, shop.Orders(), 1)
	assert.InDelta(t, 178, shop.Orders()[0].TotalPrice, 0.001)

	details := controller.NewDetails(h.client, h.sess, 1)
	require.NoError(t, details.Load(ctx))
	require.True(t, details.CanReview())
	require.NoError(t, details.AddReview(ctx, 4, "sprouted well"))
	assert.False(t, details.CanReview())

	details = controller.NewDetails(h.client, h.sess, 1)
	require.NoError(t, details.Load(ctx))
	assert.False(t, details.CanReview())
	assert.InDelta(t, 4, details.AverageRating(), 0.001)

	assert.ErrorIs(t, shop.SetOrderStatus(ctx, shop.Orders()[0].ID, models.OrderStatusShipped), controller.ErrNotAdmin)
}

func TestAdminChangesOrderStatus(t *testing.T) {
	srv := mockapitest.New(t)
	ctx := context.Background()

	buyer := newHarness(t, srv)
	require.NoError(t, controller.NewAuth(buyer.client, buyer.sess).SignUp(ctx, "oleg", "oleg@example.com", "pw"))
	require.NoError(t, buyer.client.AddToCart(ctx, 2, 1))
	order, err := buyer.client.CreateOrder(ctx, "Lesnaya 7", "+7 903")
	require.NoError(t, err)

	admin := newHarness(t, srv)
	require.NoError(t, controller.NewAuth(admin.client, admin.sess).SignIn(ctx, mockapitest.AdminEmail, mockapitest.AdminPassword))
	shop := controller.NewMain(admin.client, admin.sess)
	require.NoError(t, shop.Load(ctx))
	require.True(t, shop.IsAdmin())
	require.Len(t, shop.Orders(), 1)

	require.NoError(t, shop.SetOrderStatus(ctx, order.ID, models.OrderStatusDelivered))
	assert.Equal(t, models.OrderStatusDelivered, shop.Orders()[0].Status)

	mine, err := buyer.client.UserOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, mine[0].Status)
}

func TestSignInFailureAgainstBackend(t *testing.T) {
	srv := mockapitest.New(t)
	h := newHarness(t, srv)

	auth := controller.NewAuth(h.client, h.sess)
	require.Error(t, auth.SignIn(context.Background(), mockapitest.AdminEmail, "wrong"))

	assert.Equal(t, "Sign-in failed: invalid email or password", auth.Message())
	assert.False(t, h.sess.Authenticated())
}
