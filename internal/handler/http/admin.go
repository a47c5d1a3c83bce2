package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/internal/service"
	"github.com/thelegendaryarticuno/myfashion/pkg/httputil"
	"github.com/thelegendaryarticuno/myfashion/pkg/pagination"
	"github.com/thelegendaryarticuno/myfashion/pkg/validator"
)

// AdminHandler handles the seller dashboard endpoints. Every route sits
// behind SellerAuth.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates the admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// UpdateStockRequest edits one inventory row.
type UpdateStockRequest struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Category     string   `json:"category"`
	InStockValue *int     `json:"inStockValue" validate:"omitempty,gte=0"`
	Visibility   string   `json:"visibility"`
}

// SaveCouponRequest creates a coupon.
type SaveCouponRequest struct {
	Code               string `json:"code" validate:"required"`
	Name               string `json:"name" validate:"required"`
	DiscountPercentage int    `json:"discountPercentage" validate:"required,gte=1,lte=100"`
	ExpirationDate     string `json:"expirationDate" validate:"required"`
}

// UpdateStatusRequest carries a bare status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SEORequest carries the meta tags for one page.
type SEORequest struct {
	PageName    string `json:"pageName" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	Canonical   string `json:"canonical"`
	OGImage     string `json:"ogImage"`
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

// --- Session ---

// VerifySession handles GET /api/v1/admin/session. The dashboard calls it
// on load to re-check that the backend still accepts the seller.
func (h *AdminHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	claims, ok := sellerFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "a seller token is required"},
		})
		return
	}

	active, err := h.service.VerifySeller(r.Context(), claims.SellerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"sellerId": claims.SellerID,
		"active":   active,
	}})
}

// --- Products ---

// ListProducts handles GET /api/v1/admin/products.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListProducts(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{productId}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// UpdateStock handles PUT /api/v1/admin/products/{productId}/stock.
func (h *AdminHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req UpdateStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.UpdateStock(r.Context(), backend.StockUpdate{
		ProductID:    chi.URLParam(r, "productId"),
		Name:         req.Name,
		Price:        req.Price,
		Category:     req.Category,
		InStockValue: req.InStockValue,
		Visibility:   req.Visibility,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// UploadImage handles POST /api/v1/admin/products/images. The multipart
// body streams through to the backend untouched.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.UploadImage(r.Context(), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"imageUrl": url}})
}

// --- Orders ---

// ListOrders handles GET /api/v1/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListOrders(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// --- Coupons ---

// ListCoupons handles GET /api/v1/admin/coupons.
func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCoupons(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// SaveCoupon handles POST /api/v1/admin/coupons.
func (h *AdminHandler) SaveCoupon(w http.ResponseWriter, r *http.Request) {
	var req SaveCouponRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.service.SaveCoupon(r.Context(), domain.Coupon{
		Code:               req.Code,
		Name:               req.Name,
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     req.ExpirationDate,
		Status:             domain.CouponStatusActive,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"status": "created"}})
}

// UpdateCouponStatus handles PUT /api/v1/admin/coupons/{code}/status.
func (h *AdminHandler) UpdateCouponStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateCouponStatus(r.Context(), chi.URLParam(r, "code"), req.Status); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// DeleteCoupon handles DELETE /api/v1/admin/coupons/{code}.
func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCoupon(r.Context(), chi.URLParam(r, "code")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Complaints ---

// ListComplaints handles GET /api/v1/admin/complaints.
func (h *AdminHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListComplaints(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// UpdateComplaintStatus handles PUT /api/v1/admin/complaints/{complaintId}/status.
func (h *AdminHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateComplaintStatus(r.Context(), chi.URLParam(r, "complaintId"), req.Status); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// --- Customers ---

// ListCustomers handles GET /api/v1/admin/customers.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCustomers(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// UpdateAccountStatus handles PUT /api/v1/admin/customers/{userId}/status.
func (h *AdminHandler) UpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateAccountStatus(r.Context(), chi.URLParam(r, "userId"), req.Status); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// --- Reviews ---

// ListReviews handles GET /api/v1/admin/reviews.
func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListReviews(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// --- SEO ---

// GetSEO handles GET /api/v1/admin/seo?pageName=home.
func (h *AdminHandler) GetSEO(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.GetSEO(r.Context(), r.URL.Query().Get("pageName"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pages})
}

// SaveSEO handles POST /api/v1/admin/seo.
func (h *AdminHandler) SaveSEO(w http.ResponseWriter, r *http.Request) {
	var req SEORequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SaveSEO(r.Context(), seoPage(req)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"status": "created"}})
}

// EditSEO handles PUT /api/v1/admin/seo.
func (h *AdminHandler) EditSEO(w http.ResponseWriter, r *http.Request) {
	var req SEORequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.EditSEO(r.Context(), seoPage(req)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// DeleteSEO handles DELETE /api/v1/admin/seo?pageName=home.
func (h *AdminHandler) DeleteSEO(w http.ResponseWriter, r *http.Request) {
	pageName := r.URL.Query().Get("pageName")
	if pageName == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "pageName is required"},
		})
		return
	}

	if err := h.service.DeleteSEO(r.Context(), pageName); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

func seoPage(req SEORequest) domain.SEOPage {
	return domain.SEOPage{
		PageName:    req.PageName,
		Title:       req.Title,
		Description: req.Description,
		Keywords:    req.Keywords,
		Canonical:   req.Canonical,
		OGImage:     req.OGImage,
	}
}
