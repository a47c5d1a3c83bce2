package domain

// Coupon status constants.
const (
	CouponStatusActive   = "Active"
	CouponStatusInactive = "Inactive"
	CouponStatusExpired  = "Expired"
)

// Coupon is a discount coupon managed from the seller dashboard.
type Coupon struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	DiscountPercentage int    `json:"discountPercentage"`
	ExpirationDate     string `json:"expirationDate"`
	Status             string `json:"status"`
}
