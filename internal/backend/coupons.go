package backend

import (
	"context"

	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
)

type couponListResponse struct {
	Coupons []domain.Coupon `json:"coupons"`
}

// GetCoupons fetches all coupons for the dashboard.
func (c *Client) GetCoupons(ctx context.Context) ([]domain.Coupon, error) {
	var out couponListResponse
	if err := c.get(ctx, "/get-coupons", &out); err != nil {
		return nil, err
	}
	return out.Coupons, nil
}

// SaveCoupon creates a coupon.
func (c *Client) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	if coupon.Code == "" {
		return apperrors.InvalidInput("coupon code is required")
	}
	return c.post(ctx, "/save-coupons", coupon, nil)
}

// UpdateCouponStatus flips a coupon between active and inactive.
func (c *Client) UpdateCouponStatus(ctx context.Context, code, status string) error {
	if code == "" {
		return apperrors.InvalidInput("coupon code is required")
	}
	return c.put(ctx, "/update-status", map[string]string{"code": code, "status": status}, nil)
}

// DeleteCoupon removes a coupon by code.
func (c *Client) DeleteCoupon(ctx context.Context, code string) error {
	if code == "" {
		return apperrors.InvalidInput("coupon code is required")
	}
	return c.delete(ctx, "/delete-coupons", map[string]string{"code": code}, nil)
}
