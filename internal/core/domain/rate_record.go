package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pair is an ordered (base, quote) currency pair for which a rate is requested.
type Pair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func (p Pair) String() string {
	return p.Base + "/" + p.Quote
}

// RateRecord is a persisted rate for a currency pair. Records are upserted by
// both the live resolution path (on provider success) and the sync job (on
// median computation); they are never deleted, staleness is judged by age.
type RateRecord struct {
	Base        string          `json:"base"`
	Quote       string          `json:"quote"`
	Rate        decimal.Decimal `json:"rate"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// OlderThan reports whether the record was last updated more than maxAge ago.
func (r RateRecord) OlderThan(maxAge time.Duration) bool {
	return time.Since(r.LastUpdated) > maxAge
}
