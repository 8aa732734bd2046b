package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
)

func (r *GormRepo) Cart(ctx context.Context, userID int) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := r.DB.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CartQuantities maps product id to quantity for the user's cart.
func (r *GormRepo) CartQuantities(ctx context.Context, userID int) (map[int]int, error) {
	var items []domain.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[int]int, len(items))
	for _, it := range items {
		out[it.ProductID] = it.Quantity
	}
	return out, nil
}

// AddToCart increases the quantity by delta, clamped to the product stock.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID, delta int) (int, error) {
	var qty int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return err
		}
		var item domain.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = domain.CartItem{UserID: userID, ProductID: productID}
		case err != nil:
			return err
		}
		qty = clamp(item.Quantity+delta, p.Stock)
		return saveCartItem(tx, item, qty)
	})
	return qty, err
}

// SetCartQuantity stores an absolute quantity, clamped to stock. Zero removes the entry.
func (r *GormRepo) SetCartQuantity(ctx context.Context, userID, productID, quantity int) (int, error) {
	var qty int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return err
		}
		qty = clamp(quantity, p.Stock)
		return saveCartItem(tx, domain.CartItem{UserID: userID, ProductID: productID}, qty)
	})
	return qty, err
}

func saveCartItem(tx *gorm.DB, item domain.CartItem, qty int) error {
	if qty <= 0 {
		return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).Delete(&domain.CartItem{}).Error
	}
	item.Quantity = qty
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Omit("Product").Create(&item).Error
}

func clamp(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 0 {
		q = 0
	}
	return q
}
