package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/diplomas-2025/agro-market/internal/logging"
	"github.com/diplomas-2025/agro-market/internal/models"
	"github.com/diplomas-2025/agro-market/internal/session"
)

// Details drives the product details screen for a single product.
type Details struct {
	gw        Gateway
	sess      *session.Manager
	productID int
	now       func() time.Time

	mu        sync.RWMutex
	product   *models.Product
	reviews   []models.Review
	canReview bool
	loading   bool
	msg       string
}

func NewDetails(gw Gateway, sess *session.Manager, productID int) *Details {
	return &Details{gw: gw, sess: sess, productID: productID, now: time.Now, loading: true}
}

func (d *Details) ProductID() int { return d.productID }

func (d *Details) Load(ctx context.Context) error {
	res, err := d.gw.Product(ctx, d.productID)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		return d.fail(ctx, "details.load", "Loading product failed", err)
	}
	p := res.Product
	d.product = &p
	d.reviews = res.Reviews
	d.canReview = true
	uid := d.sess.UserID()
	for _, r := range d.reviews {
		if r.User.ID == uid {
			d.canReview = false
			break
		}
	}
	d.msg = ""
	return nil
}

func (d *Details) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

func (d *Details) Message() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.msg
}

// Product returns the loaded product, false before Load succeeds.
func (d *Details) Product() (models.Product, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.product == nil {
		return models.Product{}, false
	}
	return *d.product, true
}

func (d *Details) Reviews() []models.Review {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Review(nil), d.reviews...)
}

// CanReview reports whether the current user has not reviewed this product yet.
func (d *Details) CanReview() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.product != nil && d.canReview
}

// AverageRating is 0 when there are no reviews.
func (d *Details) AverageRating() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range d.reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(d.reviews))
}

// AddToCart puts the first unit of the product into the cart.
func (d *Details) AddToCart(ctx context.Context) error {
	p, ok := d.Product()
	if !ok {
		return d.setMessage(ctx, "details.add_to_cart", ErrUnknownProduct)
	}
	if p.CountInCart > 0 {
		return d.Increment(ctx)
	}
	if p.Stock < 1 {
		return d.setMessage(ctx, "details.add_to_cart", ErrStockLimit)
	}
	if err := d.gw.AddToCart(ctx, d.productID, 1); err != nil {
		return d.setMessage(ctx, "details.add_to_cart", err)
	}
	d.setCount(1)
	return nil
}

func (d *Details) Increment(ctx context.Context) error {
	p, ok := d.Product()
	if !ok {
		return d.setMessage(ctx, "details.increment", ErrUnknownProduct)
	}
	if p.CountInCart <= 0 {
		return d.AddToCart(ctx)
	}
	if p.CountInCart >= p.Stock {
		return d.setMessage(ctx, "details.increment", ErrStockLimit)
	}
	if err := d.gw.UpdateCartQuantity(ctx, d.productID, p.CountInCart+1); err != nil {
		return d.setMessage(ctx, "details.increment", err)
	}
	d.setCount(p.CountInCart + 1)
	return nil
}

func (d *Details) Decrement(ctx context.Context) error {
	p, ok := d.Product()
	if !ok {
		return d.setMessage(ctx, "details.decrement", ErrUnknownProduct)
	}
	if p.CountInCart <= 0 {
		return nil
	}
	if err := d.gw.UpdateCartQuantity(ctx, d.productID, p.CountInCart-1); err != nil {
		return d.setMessage(ctx, "details.decrement", err)
	}
	d.setCount(p.CountInCart - 1)
	return nil
}

func (d *Details) ToggleFavorite(ctx context.Context) error {
	if _, ok := d.Product(); !ok {
		return d.setMessage(ctx, "details.toggle_favorite", ErrUnknownProduct)
	}
	if err := d.gw.ToggleFavorite(ctx, d.productID); err != nil {
		return d.setMessage(ctx, "details.toggle_favorite", err)
	}
	d.mu.Lock()
	d.product.Favorite = !d.product.Favorite
	d.msg = ""
	d.mu.Unlock()
	return nil
}

// AddReview posts a review and appends it locally on success.
func (d *Details) AddReview(ctx context.Context, rating int, comment string) error {
	const op = "details.add_review"
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 {
		return d.setMessage(ctx, op, ErrInvalidRating)
	}
	if comment == "" {
		return d.setMessage(ctx, op, ErrBlankComment)
	}
	if !d.CanReview() {
		return d.setMessage(ctx, op, ErrAlreadyReviewed)
	}

	if err := d.gw.CreateReview(ctx, d.productID, rating, comment); err != nil {
		return d.setMessage(ctx, op, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.reviews = append(d.reviews, models.Review{
		User:      models.User{ID: d.sess.UserID(), Username: d.sess.Username()},
		Rating:    rating,
		Comment:   comment,
		CreatedAt: models.FormatTimestamp(d.now()),
	})
	d.canReview = false
	d.msg = ""
	return nil
}

func (d *Details) setCount(n int) {
	d.mu.Lock()
	d.product.CountInCart = n
	d.msg = ""
	d.mu.Unlock()
}

func (d *Details) setMessage(ctx context.Context, op string, err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fail(ctx, op, "Action failed", err)
}

func (d *Details) fail(ctx context.Context, op, action string, err error) error {
	d.msg = Describe(action, err)
	logging.FromContext(ctx).Warn("action_failed", "controller", op, "product_id", d.productID, "reason", d.msg)
	return err
}
