package controller

import (
	"context"

	"github.com/diplomas-2025/agro-market/internal/models"
)

// SetOrderStatus changes an order's status. Only admins may do this.
func (m *Main) SetOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	const op, action = "orders.set_status", "Status update failed"
	if !m.sess.IsAdmin() {
		return m.setMessage(ctx, op, action, ErrNotAdmin)
	}
	if !status.Valid() {
		return m.setMessage(ctx, op, action, ErrInvalidStatus)
	}
	m.mu.RLock()
	known := m.orderIndex(orderID) >= 0
	m.mu.RUnlock()
	if !known {
		return m.setMessage(ctx, op, action, ErrUnknownOrder)
	}

	if err := m.gw.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return m.setMessage(ctx, op, action, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.orderIndex(orderID); i >= 0 {
		m.orders[i].Status = status
	}
	m.msg = ""
	return nil
}

func (m *Main) orderIndex(id int) int {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return i
		}
	}
	return -1
}
