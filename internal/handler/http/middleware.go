package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/thelegendaryarticuno/myfashion/internal/session"
	"github.com/thelegendaryarticuno/myfashion/pkg/httputil"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	shopperIDKey contextKey = "shopper_id"
	sellerKey    contextKey = "seller"
)

// ShopperIDFromHeader reads the X-User-ID header into the request context.
// Storefront browsing works anonymously, so an absent header passes through;
// handlers that need a shopper check for themselves.
func ShopperIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get("X-User-ID"); uid != "" {
			r = r.WithContext(context.WithValue(r.Context(), shopperIDKey, uid))
		}
		next.ServeHTTP(w, r)
	})
}

// shopperIDFromContext extracts the shopper id, if one was sent.
func shopperIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(shopperIDKey).(string)
	return uid
}

// SellerAuth validates the Bearer token issued at login and stores the
// seller claims in the request context. Dashboard routes sit behind it.
func SellerAuth(tokens *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "a seller token is required"},
				})
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				logger.DebugContext(r.Context(), "seller token rejected",
					slog.String("error", err.Error()),
				)
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired seller token"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), sellerKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sellerFromContext extracts the authenticated seller claims.
func sellerFromContext(ctx context.Context) (*session.SellerClaims, bool) {
	claims, ok := ctx.Value(sellerKey).(*session.SellerClaims)
	return claims, ok
}

// ContentTypeJSON enforces that requests with a body carry a JSON content
// type.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
