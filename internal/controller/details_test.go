package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diplomas-2025/agro-market/internal/api"
	"github.com/diplomas-2025/agro-market/internal/models"
)

func loadedDetails(t *testing.T, reviews ...models.Review) (*Details, *fakeGateway) {
	t.Helper()
	gw := newFake()
	gw.details[1] = &models.ProductDetails{
		Product: models.Product{ID: 1, Name: "Tomato seeds", Price: 120, Stock: 2},
		Reviews: reviews,
	}
	d := NewDetails(gw, signedIn(false), 1)
	d.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	require.NoError(t, d.Load(context.Background()))
	gw.calls = nil
	return d, gw
}

func TestDetailsCanReview(t *testing.T) {
	d, _ := loadedDetails(t, models.Review{User: models.User{ID: 3}, Rating: 4})
	assert.True(t, d.CanReview())

	d, _ = loadedDetails(t, models.Review{User: models.User{ID: 7}, Rating: 4})
	assert.False(t, d.CanReview())
}

func TestDetailsAverageRating(t *testing.T) {
	d, _ := loadedDetails(t)
	assert.Zero(t, d.AverageRating())

	d, _ = loadedDetails(t, models.Review{Rating: 5}, models.Review{Rating: 2})
	assert.InDelta(t, 3.5, d.AverageRating(), 0.001)
}

func TestDetailsLoadFailure(t *testing.T) {
	gw := newFake()
	gw.errs["Product"] = &api.HTTPError{StatusCode: 404, Body: "not found"}
	d := NewDetails(gw, signedIn(false), 9)

	require.Error(t, d.Load(context.Background()))
	assert.False(t, d.Loading())
	assert.Equal(t, "Loading product failed: not found", d.Message())
	_, ok := d.Product()
	assert.False(t, ok)
	assert.False(t, d.CanReview())
}

func TestAddReviewValidatesBeforeNetwork(t *testing.T) {
	d, gw := loadedDetails(t)
	ctx := context.Background()

	assert.ErrorIs(t, d.AddReview(ctx, 0, "fine"), ErrInvalidRating)
	assert.ErrorIs(t, d.AddReview(ctx, 6, "fine"), ErrInvalidRating)
	assert.ErrorIs(t, d.AddReview(ctx, 4, "   "), ErrBlankComment)
	assert.Empty(t, gw.Calls())
	assert.True(t, d.CanReview())
}

func TestAddReviewAppendsLocally(t *testing.T) {
	d, gw := loadedDetails(t)

	require.NoError(t, d.AddReview(context.Background(), 5, " great "))

	assert.Equal(t, []string{"CreateReview[1 5 great]"}, gw.Calls())
	reviews := d.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, "olga", reviews[0].User.Username)
	assert.Equal(t, 7, reviews[0].User.ID)
	assert.Equal(t, "2025-03-04T05:06:07Z", reviews[0].CreatedAt)
	assert.False(t, d.CanReview())

	assert.ErrorIs(t, d.AddReview(context.Background(), 4, "again"), ErrAlreadyReviewed)
}

func TestDetailsCartStepper(t *testing.T) {
	d, gw := loadedDetails(t)
	ctx := context.Background()

	require.NoError(t, d.AddToCart(ctx))
	require.NoError(t, d.Increment(ctx))
	assert.ErrorIs(t, d.Increment(ctx), ErrStockLimit)
	require.NoError(t, d.Decrement(ctx))
	require.NoError(t, d.Decrement(ctx))
	require.NoError(t, d.Decrement(ctx))

	assert.Equal(t, []string{
		"AddToCart[1 1]",
		"UpdateCartQuantity[1 2]",
		"UpdateCartQuantity[1 1]",
		"UpdateCartQuantity[1 0]",
	}, gw.Calls())
	p, _ := d.Product()
	assert.Zero(t, p.CountInCart)
}

func TestDetailsToggleFavorite(t *testing.T) {
	d, _ := loadedDetails(t)

	require.NoError(t, d.ToggleFavorite(context.Background()))
	p, _ := d.Product()
	assert.True(t, p.Favorite)
}
