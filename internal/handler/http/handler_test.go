package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelegendaryarticuno/myfashion/internal/backend"
	"github.com/thelegendaryarticuno/myfashion/internal/domain"
	"github.com/thelegendaryarticuno/myfashion/internal/otp"
	"github.com/thelegendaryarticuno/myfashion/internal/recent"
	"github.com/thelegendaryarticuno/myfashion/internal/service"
	"github.com/thelegendaryarticuno/myfashion/internal/session"
	apperrors "github.com/thelegendaryarticuno/myfashion/pkg/errors"
	"github.com/thelegendaryarticuno/myfashion/pkg/health"
	"github.com/thelegendaryarticuno/myfashion/pkg/middleware"
)

// stubBackend is a functional test double for the fashion API client. Any
// func left nil gets a benign default.
type stubBackend struct {
	products    []domain.Product
	productsErr error

	sendOTP   func(email string) error
	verifyOTP func(email, code string) error
	resendOTP func(email string) error
	login     func(sellerID, email, password string) (string, error)
}

func (s *stubBackend) GetProducts(context.Context) ([]domain.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products, nil
}

func (s *stubBackend) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", productID)
}

func (s *stubBackend) GetProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubBackend) FindReviews(context.Context, string) ([]domain.Review, error) {
	return []domain.Review{}, nil
}

func (s *stubBackend) AddToCart(context.Context, backend.AddToCartInput) error { return nil }

func (s *stubBackend) PostComplaint(context.Context, domain.Complaint) error { return nil }

func (s *stubBackend) SendOTP(_ context.Context, email string) error {
	if s.sendOTP != nil {
		return s.sendOTP(email)
	}
	return nil
}

func (s *stubBackend) VerifyOTP(_ context.Context, email, code string) error {
	if s.verifyOTP != nil {
		return s.verifyOTP(email, code)
	}
	return nil
}

func (s *stubBackend) ResendOTP(_ context.Context, email string) error {
	if s.resendOTP != nil {
		return s.resendOTP(email)
	}
	return nil
}

func (s *stubBackend) Login(_ context.Context, sellerID, email, password string) (string, error) {
	if s.login != nil {
		return s.login(sellerID, email, password)
	}
	return sellerID, nil
}

// Admin surface defaults.

func (s *stubBackend) DeleteProduct(context.Context, string) error { return nil }

func (s *stubBackend) UpdateStock(context.Context, backend.StockUpdate) error { return nil }

func (s *stubBackend) UploadImage(context.Context, string, io.Reader) (string, error) {
	return "https://img.example.com/u.jpg", nil
}

func (s *stubBackend) GetOrders(context.Context) ([]domain.Order, error) {
	return []domain.Order{}, nil
}

func (s *stubBackend) GetCoupons(context.Context) ([]domain.Coupon, error) {
	return []domain.Coupon{{Code: "WELCOME10", Name: "Welcome", DiscountPercentage: 10, Status: domain.CouponStatusActive}}, nil
}

func (s *stubBackend) SaveCoupon(context.Context, domain.Coupon) error { return nil }

func (s *stubBackend) UpdateCouponStatus(context.Context, string, string) error { return nil }

func (s *stubBackend) DeleteCoupon(context.Context, string) error { return nil }

func (s *stubBackend) GetComplaints(context.Context) ([]domain.Complaint, error) {
	return []domain.Complaint{}, nil
}

func (s *stubBackend) UpdateComplaintStatus(context.Context, string, string) error { return nil }

func (s *stubBackend) GetCustomers(context.Context) ([]domain.Customer, error) {
	return []domain.Customer{}, nil
}

func (s *stubBackend) UpdateAccountStatus(context.Context, string, string) error { return nil }

func (s *stubBackend) GetReviews(context.Context) ([]domain.Review, error) {
	return []domain.Review{}, nil
}

func (s *stubBackend) GetSEOComponents(context.Context, string) ([]domain.SEOPage, error) {
	return []domain.SEOPage{}, nil
}

func (s *stubBackend) SaveSEOComponent(context.Context, domain.SEOPage) error { return nil }

func (s *stubBackend) EditSEOComponent(context.Context, domain.SEOPage) error { return nil }

func (s *stubBackend) DeleteSEOComponent(context.Context, string) error { return nil }

func (s *stubBackend) VerifySeller(context.Context, string) (bool, error) { return true, nil }

// noopPublisher drops all activity events.
type noopPublisher struct{}

func (noopPublisher) PublishProductViewed(context.Context, *domain.Product, string) error { return nil }
func (noopPublisher) PublishCartItemAdded(context.Context, string, string, int) error     { return nil }
func (noopPublisher) PublishSellerLoggedIn(context.Context, string, string) error         { return nil }

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ProductID: "p1", Name: "Linen Shirt", Category: "Fashion", Price: 499},
		{ProductID: "p2", Name: "Denim Jacket", Category: "Fashion", Price: 2499},
		{ProductID: "p3", Name: "Clay Vase", Category: "Home Decor", Price: 1299},
		{ProductID: "p4", Name: "Kurta Set", Category: "Fashion", Price: 1799},
		{ProductID: "p5", Name: "Wall Clock", Category: "Home Decor", Price: 999},
		{ProductID: "p6", Name: "Cotton Tee", Category: "Fashion", Price: 999},
		{ProductID: "p7", Name: "Sneakers", Category: "Fashion", Price: 3499},
	}
}

type testEnv struct {
	router http.Handler
	tokens *session.Manager
}

func newTestEnv(t *testing.T, b *stubBackend) testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	tokens := session.NewManager("test-secret", time.Hour)

	storefront := service.NewStorefrontService(b, recent.NewMemoryRepository(), noopPublisher{}, logger, time.Minute)
	flow := otp.NewFlow(b, otp.NewMemoryRepository(), logger)
	auth := service.NewAuthService(flow, tokens, noopPublisher{}, logger)
	admin := service.NewAdminService(b, logger)

	router := NewRouter(storefront, auth, admin, tokens, health.NewHandler(), logger, RouterConfig{
		OTPRatePerSecond: 100,
		OTPBurst:         100,
		CORS:             middleware.DefaultCORSConfig(),
	})
	return testEnv{router: router, tokens: tokens}
}

func (e testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// --- Catalog ---

func TestGetCatalog_DefaultWindow(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/catalog", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
		HasMore  bool             `json:"hasMore"`
	}
	decodeData(t, rec, &page)
	assert.Len(t, page.Products, 6)
	assert.Equal(t, 7, page.Total)
	assert.True(t, page.HasMore)
}

func TestGetCatalog_FiltersAndSort(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet,
		"/api/v1/catalog?category=Fashion&price=Under+%E2%82%B9999&sort=price-asc", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Products []domain.Product    `json:"products"`
		Filters  map[string][]string `json:"filters"`
	}
	decodeData(t, rec, &page)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "p1", page.Products[0].ProductID)
	assert.Equal(t, "p6", page.Products[1].ProductID)
	assert.Equal(t, []string{"Under ₹999"}, page.Filters["price"])
}

func TestGetCatalog_BackendDown(t *testing.T) {
	env := newTestEnv(t, &stubBackend{productsErr: assert.AnError})

	rec := env.do(t, http.MethodGet, "/api/v1/catalog", nil, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVICE_UNAVAILABLE")
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/catalog/categories", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []string
	decodeData(t, rec, &categories)
	assert.Equal(t, []string{"all", "Fashion", "Home Decor"}, categories)
}

// --- Product page ---

func TestGetProduct_RecordsRecentlyViewed(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})
	headers := map[string]string{"X-User-ID": "shopper-1"}

	rec := env.do(t, http.MethodGet, "/api/v1/products/p2", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/recently-viewed", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []recent.Entry
	decodeData(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].ProductID)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/products/missing", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecentlyViewed_RequiresShopperHeader(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/recently-viewed", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Cart ---

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"productId": "p1", "quantity": 2},
		map[string]string{"X-User-ID": "shopper-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddToCart_ValidationError(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"quantity": 0},
		map[string]string{"X-User-ID": "shopper-1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

// --- Auth flow ---

func TestAuthFlow_EndToEnd(t *testing.T) {
	b := &stubBackend{products: catalogFixture()}
	env := newTestEnv(t, b)
	email := "seller@example.com"

	rec := env.do(t, http.MethodPost, "/api/v1/auth/otp/send", map[string]string{"email": email}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(otp.StateSent))

	rec = env.do(t, http.MethodPost, "/api/v1/auth/otp/verify",
		map[string]string{"email": email, "otp": "123 456"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(otp.StateVerified))

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"sellerId": "seller-1", "email": email, "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		SellerID string `json:"sellerId"`
		Token    string `json:"token"`
	}
	decodeData(t, rec, &result)
	assert.Equal(t, "seller-1", result.SellerID)

	claims, err := env.tokens.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "seller-1", claims.SellerID)
}

func TestAuthFlow_ExpiredCodeGets410WithResend(t *testing.T) {
	b := &stubBackend{
		products:  catalogFixture(),
		verifyOTP: func(string, string) error { return apperrors.Gone("OTP has expired") },
	}
	env := newTestEnv(t, b)
	email := "seller@example.com"

	rec := env.do(t, http.MethodPost, "/api/v1/auth/otp/send", map[string]string{"email": email}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/otp/verify",
		map[string]string{"email": email, "otp": "123456"}, nil)

	require.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, rec.Body.String(), string(otp.StateExpired))
	assert.Contains(t, rec.Body.String(), `"canResend":true`)

	// Resend returns the attempt to the sent state.
	rec = env.do(t, http.MethodPut, "/api/v1/auth/otp/resend", map[string]string{"email": email}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(otp.StateSent))
}

func TestLogin_BeforeVerify_Conflict(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})
	email := "seller@example.com"

	rec := env.do(t, http.MethodPost, "/api/v1/auth/otp/send", map[string]string{"email": email}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"sellerId": "seller-1", "email": email, "password": "hunter2"}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSendOTP_InvalidEmail(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/auth/otp/send", map[string]string{"email": "not-an-email"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

// --- Admin ---

func TestAdmin_RequiresToken(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_RejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products", nil,
		map[string]string{"Authorization": "Bearer nonsense"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func sellerHeaders(t *testing.T, env testEnv) map[string]string {
	t.Helper()
	token, err := env.tokens.Issue("seller-1", "seller@example.com")
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAdmin_ListProducts(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products?page=1&per_page=5", nil, sellerHeaders(t, env))

	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		Data       []domain.Product `json:"data"`
		TotalCount int              `json:"total_count"`
		HasNext    bool             `json:"has_next"`
	}
	decodeData(t, rec, &result)
	assert.Len(t, result.Data, 5)
	assert.Equal(t, 7, result.TotalCount)
	assert.True(t, result.HasNext)
}

func TestAdmin_VerifySession(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodGet, "/api/v1/admin/session", nil, sellerHeaders(t, env))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":true`)
}

func TestAdmin_SaveCoupon(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/admin/coupons", map[string]any{
		"code":               "FESTIVE20",
		"name":               "Festive Sale",
		"discountPercentage": 20,
		"expirationDate":     "2026-12-31",
	}, sellerHeaders(t, env))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdmin_SaveCoupon_Invalid(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/admin/coupons", map[string]any{
		"code":               "FESTIVE200",
		"name":               "Festive Sale",
		"discountPercentage": 200,
		"expirationDate":     "2026-12-31",
	}, sellerHeaders(t, env))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Contact form ---

func TestFileComplaint(t *testing.T) {
	env := newTestEnv(t, &stubBackend{products: catalogFixture()})

	rec := env.do(t, http.MethodPost, "/api/v1/complaints", map[string]string{
		"name":    "A Shopper",
		"email":   "shopper@example.com",
		"message": "my order never arrived",
	}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

// --- Rate limiting ---

func TestOTPEndpoints_RateLimited(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	b := &stubBackend{products: catalogFixture()}
	tokens := session.NewManager("test-secret", time.Hour)
	storefront := service.NewStorefrontService(b, recent.NewMemoryRepository(), noopPublisher{}, logger, time.Minute)
	flow := otp.NewFlow(b, otp.NewMemoryRepository(), logger)
	auth := service.NewAuthService(flow, tokens, noopPublisher{}, logger)
	admin := service.NewAdminService(b, logger)

	router := NewRouter(storefront, auth, admin, tokens, health.NewHandler(), logger, RouterConfig{
		OTPRatePerSecond: 1,
		OTPBurst:         1,
		CORS:             middleware.DefaultCORSConfig(),
	})
	env := testEnv{router: router, tokens: tokens}

	first := env.do(t, http.MethodPost, "/api/v1/auth/otp/send",
		map[string]string{"email": "a@example.com"}, nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do(t, http.MethodPost, "/api/v1/auth/otp/send",
		map[string]string{"email": "b@example.com"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
