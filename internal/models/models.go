package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	reviewTimeLayout  = "2006-01-02T15:04:05Z"
	orderTimeLayout   = "2006-01-02T15:04:05.999999Z"
	displayTimeLayout = "02-01-2006 15:04"

	PlaceholderImage = "placeholder"
)

type SignUpParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type JwtResponse struct {
	UserID       int    `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
	Username     string `json:"username"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
	CountInCart int     `json:"countInCart"`
	CategoryID  int     `json:"categoryId"`
	Favorite    bool    `json:"favorite"`
}

// ImageRef is the reference a renderer should load for the product picture.
func (p Product) ImageRef() string {
	if strings.TrimSpace(p.Image) == "" {
		return PlaceholderImage
	}
	return p.Image
}

type ProductDetails struct {
	Product Product  `json:"product"`
	Reviews []Review `json:"reviews"`
}

type Review struct {
	ID        int    `json:"id"`
	User      User   `json:"user"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

func (r Review) CreatedAtDisplay() string {
	return displayTime(r.CreatedAt, reviewTimeLayout)
}

type CartEntry struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (c CartEntry) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}

type OrderItem struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID         int         `json:"id"`
	User       User        `json:"user"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  string      `json:"createdAt"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone"`
	OrderItems []OrderItem `json:"orderItems"`
}

func (o Order) CreatedAtDisplay() string {
	return displayTime(o.CreatedAt, orderTimeLayout)
}

// FormatTimestamp renders t in the review wire layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(reviewTimeLayout)
}

func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f ₽", v)
}

func displayTime(raw, layout string) string {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(displayTimeLayout)
}
