package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	"github.com/shopspring/decimal"
)

// providerCaller performs HTTP calls against rate providers with a bounded
// per-attempt timeout and fixed-backoff retries for transport-level failures.
type providerCaller struct {
	client   *http.Client
	timeout  time.Duration
	attempts int
	backoff  time.Duration
}

func newProviderCaller(timeout time.Duration, attempts int, backoff time.Duration) *providerCaller {
	if attempts < 1 {
		attempts = 1
	}
	return &providerCaller{
		client:   &http.Client{},
		timeout:  timeout,
		attempts: attempts,
		backoff:  backoff,
	}
}

// FetchRate queries one provider and extracts the rate for the pair.
// Transport errors and non-2xx statuses are retried up to the attempt limit;
// extraction failures are terminal since the payload will not improve on
// retry. Every failure mode comes back as a plain error.
func (c *providerCaller) FetchRate(ctx context.Context, provider ports.RateProvider, base, quote string) (decimal.Decimal, error) {
	endpoint, query := provider.BuildRequest(base, quote)

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return decimal.Zero, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		body, err := c.doRequest(ctx, endpoint, query)
		if err != nil {
			lastErr = err
			continue
		}

		return provider.ExtractRate(body, base, quote)
	}

	return decimal.Zero, fmt.Errorf("%s: %w", provider.Name(), lastErr)
}

func (c *providerCaller) doRequest(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
