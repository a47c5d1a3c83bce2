package middleware

import (
	"log/slog"
	"net/http"

	"github.com/thelegendaryarticuno/myfashion/pkg/logger"
)

// RequestLogger builds a request-scoped logger enriched with correlation_id,
// shopper_id, trace_id, and span_id, and stores it in context via
// logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// Mount AFTER RequestLogging (which sets correlation_id) and Tracing (which
// sets the span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Shopper identity arrives on the X-User-ID header; the
			// storefront has no auth gate for browsing.
			if shopperID := r.Header.Get("X-User-ID"); shopperID != "" {
				ctx = logger.WithShopperID(ctx, shopperID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
