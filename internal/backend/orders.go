package backend

import (
	"context"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
)

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
}

// GetOrders fetches all placed orders for the dashboard.
func (c *Client) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var out orderListResponse
	if err := c.get(ctx, "/get-orders", &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}
