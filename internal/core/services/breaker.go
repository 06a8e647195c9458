package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
)

const (
	circuitKeyPrefix = "circuit:"
	failureKeyPrefix = "failures:"
	circuitOpenValue = "open"
)

// CircuitBreaker gates provider attempts with a per-provider rolling failure
// counter. State lives in the shared TTL cache so counting stays correct
// across processes; the cache's atomic Increment prevents undercounting when
// concurrent requests record failures for the same provider.
//
// An open circuit self-clears when its cache key expires; there is no manual
// reset path.
type CircuitBreaker struct {
	cache            ports.TTLCache
	failureThreshold int64
	failureWindow    time.Duration
	openDuration     time.Duration
}

// NewCircuitBreaker creates a CircuitBreaker over the given TTL cache.
func NewCircuitBreaker(cache ports.TTLCache, failureThreshold int, failureWindow, openDuration time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		cache:            cache,
		failureThreshold: int64(failureThreshold),
		failureWindow:    failureWindow,
		openDuration:     openDuration,
	}
}

// Allow reports whether the named provider may be attempted. Cache errors
// fail open: a cache outage must not disable every provider.
func (b *CircuitBreaker) Allow(ctx context.Context, name string) bool {
	value, ok, err := b.cache.Get(ctx, circuitKeyPrefix+name)
	if err != nil {
		return true
	}
	return !ok || value != circuitOpenValue
}

// RecordSuccess clears the provider's failure counter.
func (b *CircuitBreaker) RecordSuccess(ctx context.Context, name string) {
	_ = b.cache.Forget(ctx, failureKeyPrefix+name)
}

// RecordFailure increments the provider's failure counter, refreshing its
// expiry window. Crossing the threshold opens the circuit for the cooldown
// period and resets the counter. Returns true when this failure opened the
// circuit. Two callers crossing the threshold together both issue the same
// Put, so the transition is idempotent.
func (b *CircuitBreaker) RecordFailure(ctx context.Context, name string) bool {
	failures, err := b.cache.Increment(ctx, failureKeyPrefix+name, b.failureWindow)
	if err != nil {
		return false
	}
	if failures >= b.failureThreshold {
		_ = b.cache.Put(ctx, circuitKeyPrefix+name, circuitOpenValue, b.openDuration)
		_ = b.cache.Forget(ctx, failureKeyPrefix+name)
		return true
	}
	return false
}
