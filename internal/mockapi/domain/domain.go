package domain

import (
	"time"

	"github.com/diplomas-2025/agro-market/internal/models"
)

type User struct {
	ID           int    `gorm:"primaryKey"`
	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool
	CreatedAt    time.Time
}

type Category struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

type Product struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64
	Stock       int
	Image       string
	CategoryID  int `gorm:"index"`
}

type CartItem struct {
	ID        int `gorm:"primaryKey"`
	UserID    int `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID int `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int
	Product   Product
}

type Favorite struct {
	UserID    int `gorm:"primaryKey;autoIncrement:false"`
	ProductID int `gorm:"primaryKey;autoIncrement:false"`
}

type Review struct {
	ID        int `gorm:"primaryKey"`
	UserID    int `gorm:"uniqueIndex:idx_review_user_product;not null"`
	ProductID int `gorm:"uniqueIndex:idx_review_user_product;not null"`
	Rating    int
	Comment   string
	CreatedAt time.Time
	User      User
}

type Order struct {
	ID         int `gorm:"primaryKey"`
	UserID     int `gorm:"index;not null"`
	TotalPrice float64
	Status     string `gorm:"not null"`
	Address    string
	Phone      string
	CreatedAt  time.Time
	User       User
	Items      []OrderItem
}

type OrderItem struct {
	ID        int `gorm:"primaryKey"`
	OrderID   int `gorm:"index;not null"`
	ProductID int
	Quantity  int
	Price     float64
	Product   Product
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &CartItem{}, &Favorite{}, &Review{}, &Order{}, &OrderItem{}}
}

const (
	reviewLayout = "2006-01-02T15:04:05Z"
	orderLayout  = "2006-01-02T15:04:05.000000Z"
)

func (u User) Wire() models.User {
	return models.User{ID: u.ID, Username: u.Username}
}

func (c Category) Wire() models.Category {
	return models.Category{ID: c.ID, Name: c.Name}
}

// Wire renders a product as seen by one user.
func (p Product) Wire(countInCart int, favorite bool) models.Product {
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		CountInCart: countInCart,
		CategoryID:  p.CategoryID,
		Favorite:    favorite,
	}
}

func (r Review) Wire() models.Review {
	return models.Review{
		ID:        r.ID,
		User:      r.User.Wire(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC().Format(reviewLayout),
	}
}

func (o Order) Wire() models.Order {
	items := make([]models.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, models.OrderItem{
			ID:       it.ID,
			Product:  it.Product.Wire(0, false),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return models.Order{
		ID:         o.ID,
		User:       o.User.Wire(),
		TotalPrice: o.TotalPrice,
		Status:     models.OrderStatus(o.Status),
		CreatedAt:  o.CreatedAt.UTC().Format(orderLayout),
		Address:    o.Address,
		Phone:      o.Phone,
		OrderItems: items,
	}
}
