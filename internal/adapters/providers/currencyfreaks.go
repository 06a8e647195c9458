package providers

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	"github.com/shopspring/decimal"
)

// CurrencyFreaks is the second fallback provider. It only publishes rates
// against a fixed reference currency (USD), so the pair rate has to be
// derived as rates[quote] / rates[base]. If either side is missing the
// provider yields no rate.
type CurrencyFreaks struct {
	baseURL string
	apiKey  string
}

// NewCurrencyFreaks creates a CurrencyFreaks provider.
func NewCurrencyFreaks(baseURL, apiKey string) *CurrencyFreaks {
	return &CurrencyFreaks{baseURL: baseURL, apiKey: apiKey}
}

// Name implements ports.RateProvider.
func (p *CurrencyFreaks) Name() string {
	return "currencyfreaks"
}

// BuildRequest implements ports.RateProvider.
func (p *CurrencyFreaks) BuildRequest(base, quote string) (string, url.Values) {
	query := url.Values{}
	query.Set("apikey", p.apiKey)
	query.Set("symbols", base+","+quote)
	return p.baseURL + "/v2.0/rates/latest", query
}

// ExtractRate implements ports.RateProvider.
// CurrencyFreaks serializes rates as JSON strings; decimal handles both
// quoted and bare numbers.
func (p *CurrencyFreaks) ExtractRate(body []byte, base, quote string) (decimal.Decimal, error) {
	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("currencyfreaks: malformed response: %w", err)
	}
	refToQuote, okQuote := payload.Rates[quote]
	refToBase, okBase := payload.Rates[base]
	if !okQuote || !okBase || !refToQuote.IsPositive() || !refToBase.IsPositive() {
		return decimal.Zero, fmt.Errorf("currencyfreaks: cannot derive rate for %s/%s", base, quote)
	}
	return refToQuote.Div(refToBase), nil
}

var _ ports.RateProvider = (*CurrencyFreaks)(nil)
