package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diplomas-2025/agro-market/internal/models"
)

func TestSetOrderStatusRejectedForNonAdmin(t *testing.T) {
	m, gw := loadedMain(t, false)

	err := m.SetOrderStatus(context.Background(), 10, models.OrderStatusShipped)

	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Empty(t, gw.Calls())
	assert.Equal(t, models.OrderStatusCreated, m.Orders()[0].Status)
}

func TestSetOrderStatusAsAdmin(t *testing.T) {
	m, gw := loadedMain(t, true)

	require.NoError(t, m.SetOrderStatus(context.Background(), 10, models.OrderStatusDelivered))

	assert.Equal(t, []string{"UpdateOrderStatus[10 DELIVERED]"}, gw.Calls())
	assert.Equal(t, models.OrderStatusDelivered, m.Orders()[0].Status)
}

func TestSetOrderStatusValidation(t *testing.T) {
	m, gw := loadedMain(t, true)
	ctx := context.Background()

	assert.ErrorIs(t, m.SetOrderStatus(ctx, 10, models.OrderStatus("LOST")), ErrInvalidStatus)
	assert.ErrorIs(t, m.SetOrderStatus(ctx, 99, models.OrderStatusShipped), ErrUnknownOrder)
	assert.Empty(t, gw.Calls())
}
