package controller

import (
	"context"
	"strings"
)

// CartTotal is the sum of price times quantity over the cart.
func (m *Main) CartTotal() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, e := range m.cart {
		total += e.Subtotal()
	}
	return total
}

func (m *Main) CartIncrement(ctx context.Context, productID int) error {
	const op, action = "cart.increment", "Cart update failed"
	m.mu.RLock()
	i := m.cartIndex(productID)
	var qty, stock int
	if i >= 0 {
		qty, stock = m.cart[i].Quantity, m.cart[i].Product.Stock
	}
	m.mu.RUnlock()
	if i < 0 {
		return m.setMessage(ctx, op, action, ErrUnknownProduct)
	}
	if qty >= stock {
		return m.setMessage(ctx, op, action, ErrStockLimit)
	}
	return m.setCartQuantity(ctx, op, productID, qty+1)
}

// CartDecrement lowers the quantity by one; reaching zero removes the entry.
func (m *Main) CartDecrement(ctx context.Context, productID int) error {
	const op = "cart.decrement"
	m.mu.RLock()
	i := m.cartIndex(productID)
	var qty int
	if i >= 0 {
		qty = m.cart[i].Quantity
	}
	m.mu.RUnlock()
	if i < 0 {
		return m.setMessage(ctx, op, "Cart update failed", ErrUnknownProduct)
	}
	return m.setCartQuantity(ctx, op, productID, qty-1)
}

func (m *Main) RemoveFromCart(ctx context.Context, productID int) error {
	return m.setCartQuantity(ctx, "cart.remove", productID, 0)
}

func (m *Main) setCartQuantity(ctx context.Context, op string, productID, qty int) error {
	if qty < 0 {
		qty = 0
	}
	if err := m.gw.UpdateCartQuantity(ctx, productID, qty); err != nil {
		return m.setMessage(ctx, op, "Cart update failed", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.cartIndex(productID); i >= 0 {
		if qty == 0 {
			m.cart = append(m.cart[:i], m.cart[i+1:]...)
		} else {
			m.cart[i].Quantity = qty
		}
	}
	if i := m.productIndex(productID); i >= 0 {
		m.products[i].CountInCart = qty
	}
	m.msg = ""
	return nil
}

// Checkout places an order for the whole cart.
func (m *Main) Checkout(ctx context.Context, address, phone string) error {
	const op, action = "cart.checkout", "Checkout failed"
	if strings.TrimSpace(address) == "" || strings.TrimSpace(phone) == "" {
		return m.setMessage(ctx, op, action, ErrBlankCheckout)
	}
	m.mu.RLock()
	empty := len(m.cart) == 0
	m.mu.RUnlock()
	if empty {
		return m.setMessage(ctx, op, action, ErrEmptyCart)
	}

	order, err := m.gw.CreateOrder(ctx, strings.TrimSpace(address), strings.TrimSpace(phone))
	if err != nil {
		return m.setMessage(ctx, op, action, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	for i := range m.products {
		m.products[i].CountInCart = 0
	}
	m.orders = append(m.orders, *order)
	m.msg = ""
	return nil
}
