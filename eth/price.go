package eth

import (
	"context"
	"strings"

	"github.com/AlexZinkM/eth-wallet-panel/internal/client"
	"github.com/AlexZinkM/eth-wallet-panel/internal/common"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
)

// PriceQuoter values an ether amount in a fiat currency using CoinGecko
type PriceQuoter struct {
	coinGecko *client.CoinGeckoClient
	currency  string
}

var _ panel.Quoter = (*PriceQuoter)(nil)

// NewPriceQuoter creates a quoter for currency (e.g. "usd", "rub")
func NewPriceQuoter(coinGecko *client.CoinGeckoClient, currency string) *PriceQuoter {
	return &PriceQuoter{
		coinGecko: coinGecko,
		currency:  strings.ToLower(currency),
	}
}

// Quote returns ether * rate with two decimals
func (q *PriceQuoter) Quote(ctx context.Context, ether string) (string, error) {
	rate, err := q.coinGecko.GetETHRate(ctx, q.currency)
	if err != nil {
		return "", err
	}
	return common.FormatFiat(ether, rate)
}
