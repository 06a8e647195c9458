package providers

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	"github.com/shopspring/decimal"
)

// Frankfurter is the primary provider. It publishes direct base -> quote
// rates under a "rates" object keyed by currency code.
type Frankfurter struct {
	baseURL string
}

// NewFrankfurter creates a Frankfurter provider pointed at baseURL.
func NewFrankfurter(baseURL string) *Frankfurter {
	return &Frankfurter{baseURL: baseURL}
}

// Name implements ports.RateProvider.
func (p *Frankfurter) Name() string {
	return "frankfurter"
}

// BuildRequest implements ports.RateProvider.
func (p *Frankfurter) BuildRequest(base, quote string) (string, url.Values) {
	query := url.Values{}
	query.Set("from", base)
	query.Set("to", quote)
	return p.baseURL + "/latest", query
}

// ExtractRate implements ports.RateProvider.
func (p *Frankfurter) ExtractRate(body []byte, base, quote string) (decimal.Decimal, error) {
	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("frankfurter: malformed response: %w", err)
	}
	rate, ok := payload.Rates[quote]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("frankfurter: no usable rate for %s/%s", base, quote)
	}
	return rate, nil
}

var _ ports.RateProvider = (*Frankfurter)(nil)
