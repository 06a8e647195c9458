package providers

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	"github.com/shopspring/decimal"
)

// FreeCurrencyAPI is the first fallback provider. Same direct base -> quote
// lookup as the primary, but the rates live under a "data" object and the
// endpoint requires an API key.
type FreeCurrencyAPI struct {
	baseURL string
	apiKey  string
}

// NewFreeCurrencyAPI creates a FreeCurrencyAPI provider.
func NewFreeCurrencyAPI(baseURL, apiKey string) *FreeCurrencyAPI {
	return &FreeCurrencyAPI{baseURL: baseURL, apiKey: apiKey}
}

// Name implements ports.RateProvider.
func (p *FreeCurrencyAPI) Name() string {
	return "freecurrencyapi"
}

// BuildRequest implements ports.RateProvider.
func (p *FreeCurrencyAPI) BuildRequest(base, quote string) (string, url.Values) {
	query := url.Values{}
	query.Set("base_currency", base)
	query.Set("currencies", quote)
	query.Set("apikey", p.apiKey)
	return p.baseURL + "/v1/latest", query
}

// ExtractRate implements ports.RateProvider.
func (p *FreeCurrencyAPI) ExtractRate(body []byte, base, quote string) (decimal.Decimal, error) {
	var payload struct {
		Data map[string]decimal.Decimal `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("freecurrencyapi: malformed response: %w", err)
	}
	rate, ok := payload.Data[quote]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("freecurrencyapi: no usable rate for %s/%s", base, quote)
	}
	return rate, nil
}

var _ ports.RateProvider = (*FreeCurrencyAPI)(nil)
