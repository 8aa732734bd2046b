package controller

import (
	"errors"
	"net/http"

	"github.com/diplomas-2025/agro-market/internal/api"
)

// Validation failures. They are raised before any network call.
var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrBlankComment    = errors.New("comment must not be blank")
	ErrBlankCheckout   = errors.New("address and phone are required")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotAdmin        = errors.New("only admins can change order status")
	ErrStockLimit      = errors.New("not enough stock")
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrUnknownProduct  = errors.New("product is not loaded")
	ErrUnknownOrder    = errors.New("order is not loaded")
	ErrInvalidStatus   = errors.New("unknown order status")
)

var validationErrors = []error{
	ErrInvalidRating, ErrBlankComment, ErrBlankCheckout, ErrEmptyCart, ErrNotAdmin,
	ErrStockLimit, ErrAlreadyReviewed, ErrUnknownProduct, ErrUnknownOrder, ErrInvalidStatus,
}

func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// Describe turns any failure into the message shown to the user. action names
// what was attempted, e.g. "Sign-in failed".
func Describe(action string, err error) string {
	if err == nil {
		return ""
	}
	if IsValidation(err) {
		return err.Error()
	}

	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return "Network error: " + ne.Err.Error()
	}
	var he *api.HTTPError
	if errors.As(err, &he) {
		body := he.Body
		if body == "" {
			body = http.StatusText(he.StatusCode)
		}
		return action + ": " + body
	}
	if errors.Is(err, api.ErrEmptyBody) {
		return action + ": empty response"
	}
	return action + ": " + err.Error()
}
