package service

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/pkg/pagination"
)

// AdminBackend is the slice of the fashion API the dashboard surface needs.
// The backend returns every list unpaginated; paging and ordering happen
// here.
type AdminBackend interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	UpdateStock(ctx context.Context, update backend.StockUpdate) error
	UploadImage(ctx context.Context, contentType string, body io.Reader) (string, error)

	GetOrders(ctx context.Context) ([]domain.Order, error)

	GetCoupons(ctx context.Context) ([]domain.Coupon, error)
	SaveCoupon(ctx context.Context, coupon domain.Coupon) error
	UpdateCouponStatus(ctx context.Context, code, status string) error
	DeleteCoupon(ctx context.Context, code string) error

	GetComplaints(ctx context.Context) ([]domain.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, complaintID, status string) error

	GetCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateAccountStatus(ctx context.Context, userID, status string) error

	GetReviews(ctx context.Context) ([]domain.Review, error)

	GetSEOComponents(ctx context.Context, pageName string) ([]domain.SEOPage, error)
	SaveSEOComponent(ctx context.Context, page domain.SEOPage) error
	EditSEOComponent(ctx context.Context, page domain.SEOPage) error
	DeleteSEOComponent(ctx context.Context, pageName string) error

	VerifySeller(ctx context.Context, sellerID string) (bool, error)
}

// AdminService backs the seller dashboard. Mutations pass straight through
// to the fashion API; list reads are ordered the way the dashboard tables
// show them and paged locally.
type AdminService struct {
	backend AdminBackend
	logger  *slog.Logger
}

// NewAdminService creates the admin service.
func NewAdminService(b AdminBackend, logger *slog.Logger) *AdminService {
	return &AdminService{backend: b, logger: logger}
}

// ListProducts returns one page of the inventory table, lowest stock first
// so items needing a restock surface on top.
func (s *AdminService) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Product], error) {
	products, err := s.backend.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].InStockValue < products[j].InStockValue
	})

	result := pagination.NewResult(pagination.Slice(products, params), len(products), params)
	return &result, nil
}

// DeleteProduct removes a product from the catalog.
func (s *AdminService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.backend.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", productID))
	return nil
}

// UpdateStock pushes an inventory row edit.
func (s *AdminService) UpdateStock(ctx context.Context, update backend.StockUpdate) error {
	return s.backend.UpdateStock(ctx, update)
}

// UploadImage forwards a product image upload and returns the hosted URL.
func (s *AdminService) UploadImage(ctx context.Context, contentType string, body io.Reader) (string, error) {
	return s.backend.UploadImage(ctx, contentType, body)
}

// ListOrders returns one page of orders, newest first by the backend's
// date+time strings.
func (s *AdminService) ListOrders(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Order], error) {
	orders, err := s.backend.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Date != orders[j].Date {
			return orders[i].Date > orders[j].Date
		}
		return orders[i].Time > orders[j].Time
	})

	result := pagination.NewResult(pagination.Slice(orders, params), len(orders), params)
	return &result, nil
}

// ListCoupons returns one page of coupons.
func (s *AdminService) ListCoupons(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Coupon], error) {
	coupons, err := s.backend.GetCoupons(ctx)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(pagination.Slice(coupons, params), len(coupons), params)
	return &result, nil
}

// SaveCoupon creates a coupon.
func (s *AdminService) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	return s.backend.SaveCoupon(ctx, coupon)
}

// UpdateCouponStatus flips a coupon between active and inactive.
func (s *AdminService) UpdateCouponStatus(ctx context.Context, code, status string) error {
	return s.backend.UpdateCouponStatus(ctx, code, status)
}

// DeleteCoupon removes a coupon.
func (s *AdminService) DeleteCoupon(ctx context.Context, code string) error {
	if err := s.backend.DeleteCoupon(ctx, code); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "coupon deleted", slog.String("code", code))
	return nil
}

// ListComplaints returns one page of complaints, pending before resolved.
func (s *AdminService) ListComplaints(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Complaint], error) {
	complaints, err := s.backend.GetComplaints(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].Status == domain.ComplaintStatusPending &&
			complaints[j].Status != domain.ComplaintStatusPending
	})

	result := pagination.NewResult(pagination.Slice(complaints, params), len(complaints), params)
	return &result, nil
}

// UpdateComplaintStatus marks a complaint pending or resolved.
func (s *AdminService) UpdateComplaintStatus(ctx context.Context, complaintID, status string) error {
	return s.backend.UpdateComplaintStatus(ctx, complaintID, status)
}

// ListCustomers returns one page of registered shoppers.
func (s *AdminService) ListCustomers(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Customer], error) {
	customers, err := s.backend.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(pagination.Slice(customers, params), len(customers), params)
	return &result, nil
}

// UpdateAccountStatus opens, suspends or blocks a shopper account.
func (s *AdminService) UpdateAccountStatus(ctx context.Context, userID, status string) error {
	if err := s.backend.UpdateAccountStatus(ctx, userID, status); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account status updated",
		slog.String("user_id", userID),
		slog.String("status", status),
	)
	return nil
}

// ListReviews returns one page of reviews across all products.
func (s *AdminService) ListReviews(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Review], error) {
	reviews, err := s.backend.GetReviews(ctx)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(pagination.Slice(reviews, params), len(reviews), params)
	return &result, nil
}

// GetSEO fetches the meta tags for one page, or all pages when pageName is
// empty.
func (s *AdminService) GetSEO(ctx context.Context, pageName string) ([]domain.SEOPage, error) {
	return s.backend.GetSEOComponents(ctx, pageName)
}

// SaveSEO creates the meta tags for a page.
func (s *AdminService) SaveSEO(ctx context.Context, page domain.SEOPage) error {
	return s.backend.SaveSEOComponent(ctx, page)
}

// EditSEO updates the meta tags for a page.
func (s *AdminService) EditSEO(ctx context.Context, page domain.SEOPage) error {
	return s.backend.EditSEOComponent(ctx, page)
}

// DeleteSEO removes the meta tags for a page.
func (s *AdminService) DeleteSEO(ctx context.Context, pageName string) error {
	return s.backend.DeleteSEOComponent(ctx, pageName)
}

// VerifySeller reports whether the backend still considers the seller
// logged in. Used by the dashboard to re-check the session on load.
func (s *AdminService) VerifySeller(ctx context.Context, sellerID string) (bool, error) {
	return s.backend.VerifySeller(ctx, sellerID)
}
