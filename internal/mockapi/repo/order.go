package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
)

func (r *GormRepo) preloadOrders(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("User").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Preload("Items.Product").Order("id")
}

func (r *GormRepo) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.preloadOrders(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UserOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.preloadOrders(ctx).Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) Order(ctx context.Context, id int) (*domain.Order, error) {
	var o domain.Order
	if err := r.preloadOrders(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrderFromCart turns the user's cart into an order. Item prices are
// copied from the products, stock is reduced and the cart is emptied.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, userID int, status, address, phone string) (*domain.Order, error) {
	var id int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []domain.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Order("id").Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		order := domain.Order{UserID: userID, Status: status, Address: address, Phone: phone}
		for _, it := range cart {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Product.Price,
			})
			order.TotalPrice += it.Product.Price * float64(it.Quantity)
		}
		items := order.Items
		order.Items = nil
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}

		for _, it := range cart {
			if err := tx.Model(&domain.Product{}).Where("id = ?", it.ProductID).
				Update("stock", gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", it.Quantity, it.Quantity)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		id = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Order(ctx, id)
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	res := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
