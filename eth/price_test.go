package eth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/eth-wallet-panel/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceQuoter_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"ethereum":{"usd":3000}}`))
	}))
	defer srv.Close()

	q := NewPriceQuoter(client.NewCoinGeckoClientWithURL(srv.URL), "USD")

	fiat, err := q.Quote(context.Background(), "2.5")
	require.NoError(t, err)
	assert.Equal(t, "7500.00", fiat)
}

func TestPriceQuoter_RateUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	q := NewPriceQuoter(client.NewCoinGeckoClientWithURL(srv.URL), "usd")

	_, err := q.Quote(context.Background(), "1.0")
	assert.Error(t, err)
}
