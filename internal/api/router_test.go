package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/eth-wallet-panel/internal/handler"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel/mocks"
	"github.com/AlexZinkM/eth-wallet-panel/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, rps, burst int) http.Handler {
	t.Helper()

	locator := mocks.NewMockLocator(gomock.NewController(t))
	toasts := notify.NewCenter(0, nil)
	p := panel.NewController(locator, toasts, panel.Options{})

	eth, err := handler.NewEthHandler(handler.EthHandlerConfig{
		FilePath: t.TempDir() + "/wallet.cwt",
		Panel:    p,
		Toasts:   toasts,
	})
	require.NoError(t, err)

	return SetupRouter(RouterConfig{
		Eth:            eth,
		Page:           web.NewPage(p, toasts, "", nil),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	})
}

func TestRouter_Routes(t *testing.T) {
	r := newRouter(t, 0, 0)

	for path, want := range map[string]int{
		"/eth/panel":  http.StatusOK,
		"/eth/toasts": http.StatusOK,
		"/":           http.StatusOK,
		"/nope":       http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestRouter_CorrelationID(t *testing.T) {
	r := newRouter(t, 0, 0)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eth/panel", nil))
	assert.Len(t, rec.Header().Get(CorrelationIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/eth/panel", nil)
	req.Header.Set(CorrelationIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(CorrelationIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	r := newRouter(t, 1, 2)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eth/panel", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_PerClientAndCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.getLimiter("10.0.0.1").Allow())
	assert.False(t, rl.getLimiter("10.0.0.1").Allow())
	assert.True(t, rl.getLimiter("10.0.0.2").Allow())

	now = now.Add(idleLimiterTTL + time.Second)
	rl.getLimiter("10.0.0.3")
	assert.Len(t, rl.limiters, 1)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.RemoteAddr = "bogus"
	assert.Equal(t, "bogus", clientIP(req))
}
