// Package price quotes fiat values for native currencies via CoinGecko.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const quoteURL = "https://api.coingecko.com/api/v3/simple/price?ids=%s&vs_currencies=%s"

// coinIDs maps native currency symbols to CoinGecko coin IDs. Testnet
// currencies quote at their mainnet counterpart's price.
var coinIDs = map[string]string{
	"eth": "ethereum",
}

// Fetcher retrieves spot prices. The zero currency defaults to USD.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	currency string
}

func NewFetcher(currency string) *Fetcher {
	if currency == "" {
		currency = "usd"
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  quoteURL,
		currency: strings.ToLower(currency),
	}
}

// Quote returns the fiat price of one unit of the named currency.
func (f *Fetcher) Quote(ctx context.Context, symbol string) (float64, error) {
	id, ok := coinIDs[strings.ToLower(symbol)]
	if !ok {
		return 0, fmt.Errorf("no price feed for %s", symbol)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(f.baseURL, id, f.currency), nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price feed returned %s", resp.Status)
	}

	// Response shape: {"ethereum":{"usd":1234.56}}
	var raw map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("parse price response: %w", err)
	}
	p, ok := raw[id][f.currency]
	if !ok {
		return 0, fmt.Errorf("price not available for %s", symbol)
	}
	return p, nil
}
