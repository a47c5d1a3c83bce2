package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/internal/service"
	"github.com/thelegendaryarticuno/myfashion/pkg/httputil"
	"github.com/thelegendaryarticuno/myfashion/pkg/validator"
)

// StorefrontHandler handles the shopper-facing endpoints.
type StorefrontHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewStorefrontHandler creates the storefront HTTP handler.
func NewStorefrontHandler(svc *service.StorefrontService, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		service: svc,
		logger:  logger,
	}
}

// AddToCartRequest is the JSON request body for a cart addition.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// ComplaintRequest is the JSON request body for the contact form.
type ComplaintRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Message  string `json:"message" validate:"required"`
	UserType string `json:"userType"`
}

// GetCatalog handles GET /api/v1/catalog. The client sends its whole
// selection as query parameters on every request: category, repeated
// price/color/size/occasion labels, sort and the number of pages revealed
// so far.
func (h *StorefrontHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.CatalogQuery{
		Category:    q.Get("category"),
		PriceLabels: q["price"],
		Colors:      q["color"],
		Sizes:       q["size"],
		Occasions:   q["occasion"],
		Sort:        q.Get("sort"),
		Pages:       1,
	}
	if pages := q.Get("pages"); pages != "" {
		if v, err := strconv.Atoi(pages); err == nil && v > 1 {
			query.Pages = v
		}
	}

	page, err := h.service.Catalog(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// RefreshCatalog handles POST /api/v1/catalog/refresh, the retry affordance
// for a failed snapshot fetch.
func (h *StorefrontHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RefreshCatalog(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "refreshed"}})
}

// GetCategories handles GET /api/v1/catalog/categories.
func (h *StorefrontHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// GetProduct handles GET /api/v1/products/{productId}.
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	details, err := h.service.ProductDetails(r.Context(), productID, shopperIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: details})
}

// GetRecentlyViewed handles GET /api/v1/recently-viewed.
func (h *StorefrontHandler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())
	if shopperID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-User-ID header is required"},
		})
		return
	}

	entries, err := h.service.RecentlyViewed(r.Context(), shopperID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}

// AddToCart handles POST /api/v1/cart/items.
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	shopperID := shopperIDFromContext(r.Context())
	if shopperID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-User-ID header is required"},
		})
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	err := h.service.AddToCart(r.Context(), backend.AddToCartInput{
		UserID:    shopperID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "added"}})
}

// FileComplaint handles POST /api/v1/complaints, the contact form.
func (h *StorefrontHandler) FileComplaint(w http.ResponseWriter, r *http.Request) {
	var req ComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	err := h.service.FileComplaint(r.Context(), domain.Complaint{
		Name:     req.Name,
		Email:    req.Email,
		Message:  req.Message,
		UserType: req.UserType,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"status": "filed"}})
}
