package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Oracle returns the current value of one currency unit in the reference
// fiat unit. Implementations must honor the context deadline.
type Oracle interface {
	Quote(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// HTTPOracle queries a cryptocompare-style price endpoint:
// GET {base}/data/price?fsym={code}&tsyms={fiat} -> {"EUR": 23456.78}
type HTTPOracle struct {
	baseURL       string
	referenceFiat string
	client        *http.Client
}

// NewHTTPOracle creates an oracle client with a hard per-request timeout
func NewHTTPOracle(baseURL, referenceFiat string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		baseURL:       baseURL,
		referenceFiat: referenceFiat,
		client:        &http.Client{Timeout: timeout},
	}
}

// Quote fetches the fiat rate for a currency code
func (o *HTTPOracle) Quote(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	if currencyCode == "" {
		return decimal.Zero, domain.ErrUnknownCurrency
	}

	endpoint := fmt.Sprintf("%s/data/price?fsym=%s&tsyms=%s",
		o.baseURL, url.QueryEscape(currencyCode), url.QueryEscape(o.referenceFiat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: oracle returned status %d", domain.ErrOracleUnavailable, resp.StatusCode)
	}

	// The endpoint answers 200 with {"Response":"Error",...} for unknown
	// symbols, so decode loosely and inspect.
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding quote: %v", domain.ErrOracleUnavailable, err)
	}

	raw, ok := body[o.referenceFiat]
	if !ok {
		if _, isErr := body["Response"]; isErr {
			return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, currencyCode)
		}
		return decimal.Zero, fmt.Errorf("%w: no %s quote in response", domain.ErrOracleUnavailable, o.referenceFiat)
	}

	rate, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed rate: %v", domain.ErrOracleUnavailable, err)
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s", domain.ErrOracleUnavailable, currencyCode)
	}

	return rate, nil
}
