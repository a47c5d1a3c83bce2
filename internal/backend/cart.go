package backend

import (
	"context"

	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

// AddToCartInput identifies the product and quantity being added for a
// shopper.
type AddToCartInput struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// AddToCart records a cart addition with the backend. The catalog snapshot
// is never touched; the backend owns the cart.
func (c *Client) AddToCart(ctx context.Context, input AddToCartInput) error {
	if input.UserID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return apperrors.InvalidInput("quantity must be greater than 0")
	}
	return c.post(ctx, "/cart/addtocart", input, nil)
}
