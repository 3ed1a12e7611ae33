package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
}

func TestQuote(t *testing.T) {
	srv := quoteServer(t, `{"ethereum":{"usd":2500.42}}`, http.StatusOK)
	defer srv.Close()

	f := NewFetcher("usd")
	f.baseURL = srv.URL + "?ids=%s&vs_currencies=%s"

	p, err := f.Quote(context.Background(), "ETH")
	require.NoError(t, err)
	assert.InDelta(t, 2500.42, p, 0.001)
}

func TestQuoteUnknownSymbol(t *testing.T) {
	f := NewFetcher("")
	_, err := f.Quote(context.Background(), "DOGE")
	assert.ErrorContains(t, err, "no price feed")
}

func TestQuoteServerError(t *testing.T) {
	srv := quoteServer(t, `rate limited`, http.StatusTooManyRequests)
	defer srv.Close()

	f := NewFetcher("usd")
	f.baseURL = srv.URL + "?ids=%s&vs_currencies=%s"

	_, err := f.Quote(context.Background(), "eth")
	assert.Error(t, err)
}

func TestQuoteMissingCurrency(t *testing.T) {
	srv := quoteServer(t, `{"ethereum":{"eur":2300}}`, http.StatusOK)
	defer srv.Close()

	f := NewFetcher("usd")
	f.baseURL = srv.URL + "?ids=%s&vs_currencies=%s"

	_, err := f.Quote(context.Background(), "eth")
	assert.ErrorContains(t, err, "not available")
}
