package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thelegendaryarticuno/myfashion/internal/service"
	"github.com/thelegendaryarticuno/myfashion/internal/session"
	"github.com/thelegendaryarticuno/myfashion/pkg/health"
	"github.com/thelegendaryarticuno/myfashion/pkg/middleware"
)

// RouterConfig carries the knobs the router needs beyond its handlers.
type RouterConfig struct {
	// OTPRatePerSecond and OTPBurst bound per-IP traffic on the OTP
	// endpoints, which trigger outbound email.
	OTPRatePerSecond float64
	OTPBurst         int

	// CORS settings for the browser clients.
	CORS middleware.CORSConfig

	// PprofCIDRs allowlists access to the debug endpoints.
	PprofCIDRs []string
}

// NewRouter creates the chi router with all storefront, auth and dashboard
// routes registered.
func NewRouter(
	storefront *service.StorefrontService,
	auth *service.AuthService,
	admin *service.AdminService,
	tokens *session.Manager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	storefrontHandler := NewStorefrontHandler(storefront, logger)
	authHandler := NewAuthHandler(auth, logger)
	adminHandler := NewAdminHandler(admin, logger)

	// Shopper-facing endpoints. Browsing is anonymous; the shopper id
	// header is only needed where state is kept per shopper.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ShopperIDFromHeader)

		r.Get("/catalog", storefrontHandler.GetCatalog)
		r.Post("/catalog/refresh", storefrontHandler.RefreshCatalog)
		r.Get("/catalog/categories", storefrontHandler.GetCategories)
		r.Get("/products/{productId}", storefrontHandler.GetProduct)
		r.Get("/recently-viewed", storefrontHandler.GetRecentlyViewed)
		r.Post("/cart/items", storefrontHandler.AddToCart)
		r.Post("/complaints", storefrontHandler.FileComplaint)

		// OTP endpoints trigger outbound email, so they are rate limited
		// per IP.
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.OTPRatePerSecond, cfg.OTPBurst, logger))

			r.Post("/otp/send", authHandler.SendOTP)
			r.Post("/otp/verify", authHandler.VerifyOTP)
			r.Put("/otp/resend", authHandler.ResendOTP)
			r.Post("/login", authHandler.Login)
		})

		// Dashboard endpoints sit behind the seller token.
		r.Route("/admin", func(r chi.Router) {
			r.Use(SellerAuth(tokens, logger))

			r.Get("/session", adminHandler.VerifySession)

			r.Get("/products", adminHandler.ListProducts)
			r.Delete("/products/{productId}", adminHandler.DeleteProduct)
			r.Put("/products/{productId}/stock", adminHandler.UpdateStock)
			r.Post("/products/images", adminHandler.UploadImage)

			r.Get("/orders", adminHandler.ListOrders)

			r.Get("/coupons", adminHandler.ListCoupons)
			r.Post("/coupons", adminHandler.SaveCoupon)
			r.Put("/coupons/{code}/status", adminHandler.UpdateCouponStatus)
			r.Delete("/coupons/{code}", adminHandler.DeleteCoupon)

			r.Get("/complaints", adminHandler.ListComplaints)
			r.Put("/complaints/{complaintId}/status", adminHandler.UpdateComplaintStatus)

			r.Get("/customers", adminHandler.ListCustomers)
			r.Put("/customers/{userId}/status", adminHandler.UpdateAccountStatus)

			r.Get("/reviews", adminHandler.ListReviews)

			r.Get("/seo", adminHandler.GetSEO)
			r.Post("/seo", adminHandler.SaveSEO)
			r.Put("/seo", adminHandler.EditSEO)
			r.Delete("/seo", adminHandler.DeleteSEO)
		})
	})

	return r
}
