package ports

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// RateProvider describes one external rate source: where to ask, how to shape
// the request for a pair, and how to pull a numeric rate out of the
// provider-specific response body.
type RateProvider interface {
	// Name identifies the provider in logs, breaker keys and response metadata.
	Name() string

	// BuildRequest returns the endpoint URL and query parameters for a
	// base -> quote rate lookup.
	BuildRequest(base, quote string) (endpoint string, query url.Values)

	// ExtractRate pulls the rate for the pair out of a response body.
	// Malformed JSON, a missing key or a non-positive value yields an error,
	// never a panic.
	ExtractRate(body []byte, base, quote string) (decimal.Decimal, error)
}
