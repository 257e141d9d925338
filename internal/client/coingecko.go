package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient() *CoinGeckoClient {
	return NewCoinGeckoClientWithURL(coingeckoAPI)
}

// NewCoinGeckoClientWithURL creates a client against another base URL (mirrors, tests)
func NewCoinGeckoClientWithURL(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PriceResponse response from CoinGecko simple/price: coin id -> currency -> price
type PriceResponse map[string]map[string]float64

// GetETHRate gets the ETH price in currency ("usd", "eur", ...)
func (c *CoinGeckoClient) GetETHRate(ctx context.Context, currency string) (string, error) {
	currency = strings.ToLower(currency)
	query := url.Values{"ids": {"ethereum"}, "vs_currencies": {currency}}
	endpoint := c.baseURL + "/simple/price?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return "", fmt.Errorf("failed to decode rate: %w", err)
	}

	price, ok := priceResp["ethereum"][currency]
	if !ok {
		return "", fmt.Errorf("no ethereum price in %s", currency)
	}

	return strconv.FormatFloat(price, 'f', 2, 64), nil
}
