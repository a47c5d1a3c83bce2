package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var rlLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	h := RateLimit(1, 3, rlLogger)(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/otp/send", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	h := RateLimit(1, 1, rlLogger)(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/otp/send", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/otp/send", nil)
	req.RemoteAddr = "10.0.0.2:5001"
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestRateLimit_IsolatesClients(t *testing.T) {
	h := RateLimit(1, 1, rlLogger)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/otp/send", nil)
	req.RemoteAddr = "10.0.0.3:5000"
	h.ServeHTTP(httptest.NewRecorder(), req)

	// A different IP has its own bucket.
	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/otp/send", nil)
	req.RemoteAddr = "10.0.0.4:5000"
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVisitorStore_CleanupEvictsStaleEntries(t *testing.T) {
	store := newVisitorStore(1, 1, time.Minute)

	now := time.Now()
	store.nowFunc = func() time.Time { return now }
	store.getVisitor("10.0.0.5")
	assert.Equal(t, 1, store.len())

	store.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
	store.cleanup()
	assert.Equal(t, 0, store.len())
}

func TestVisitorStore_CleanupKeepsActiveEntries(t *testing.T) {
	store := newVisitorStore(1, 1, time.Minute)

	now := time.Now()
	store.nowFunc = func() time.Time { return now }
	store.getVisitor("10.0.0.6")

	store.nowFunc = func() time.Time { return now.Add(30 * time.Second) }
	store.getVisitor("10.0.0.6")

	store.nowFunc = func() time.Time { return now.Add(80 * time.Second) }
	store.cleanup()
	assert.Equal(t, 1, store.len())
}
