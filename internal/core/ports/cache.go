package ports

import (
	"context"
	"time"
)

// TTLCache is a keyed store with per-key expiry. It backs both the short-lived
// rate cache and the circuit breaker state. Implementations must provide an
// atomic increment so concurrent failure recording cannot undercount.
type TTLCache interface {
	// Get returns the value at key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores value at key with the given expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// Increment atomically increments the counter at key, refreshing its
	// expiry to ttl, and returns the post-increment value.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Forget removes the key. Removing a missing key is not an error.
	Forget(ctx context.Context, key string) error
}
