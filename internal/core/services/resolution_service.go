package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	portsrepo "github.com/SscSPs/currency_exchange_service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Sources a resolved rate can come from. Provider hits are tagged with the
// provider's own name instead.
const (
	SourceCache      = "cache"
	SourceLocalStore = "local_store"
)

// Resolution is the outcome of a rate lookup: the rate, where it came from,
// and the persisted record when one was read. Record is nil on cache hits,
// which never touch the store.
type Resolution struct {
	Rate   decimal.Decimal
	Source string
	Record *domain.RateRecord
}

// RateResolutionService resolves the rate for a currency pair through the
// cache -> local store -> provider chain fallback. Each step is cheaper and
// more authoritative than the next, so the lookup short-circuits on the first
// hit.
type RateResolutionService struct {
	repo      portsrepo.RateRepositoryFacade
	cache     ports.TTLCache
	providers []ports.RateProvider
	breaker   *CircuitBreaker
	caller    *providerCaller
	cacheTTL  time.Duration
	freshness time.Duration
	logger    *slog.Logger
}

// NewRateResolutionService creates a RateResolutionService. The providers
// slice is the chain's fixed priority order; first success wins.
func NewRateResolutionService(
	repo portsrepo.RateRepositoryFacade,
	cache ports.TTLCache,
	providers []ports.RateProvider,
	breaker *CircuitBreaker,
	callTimeout time.Duration,
	callAttempts int,
	callBackoff time.Duration,
	cacheTTL time.Duration,
	freshness time.Duration,
	logger *slog.Logger,
) *RateResolutionService {
	return &RateResolutionService{
		repo:      repo,
		cache:     cache,
		providers: providers,
		breaker:   breaker,
		caller:    newProviderCaller(callTimeout, callAttempts, callBackoff),
		cacheTTL:  cacheTTL,
		freshness: freshness,
		logger:    logger,
	}
}

func rateCacheKey(base, quote string) string {
	return "rate:" + base + "_" + quote
}

// Resolve returns the rate for base -> quote. On a fresh provider success the
// store is upserted and the cache written; no other path mutates state.
// Fails with apperrors.ErrServiceUnavailable when every eligible provider
// failed or was skipped; a stale store record is never substituted.
func (s *RateResolutionService) Resolve(ctx context.Context, base, quote domain.Currency) (*Resolution, error) {
	pairKey := rateCacheKey(base.Code(), quote.Code())

	if value, ok, err := s.cache.Get(ctx, pairKey); err == nil && ok {
		if rate, parseErr := decimal.NewFromString(value); parseErr == nil {
			return &Resolution{Rate: rate, Source: SourceCache}, nil
		}
	}

	record, err := s.repo.FindRate(ctx, base.Code(), quote.Code())
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read rate store: %w", err)
	}
	if record != nil && !record.OlderThan(s.freshness) {
		return &Resolution{Rate: record.Rate, Source: SourceLocalStore, Record: record}, nil
	}

	rate, source, ok := s.fetchFromProviders(ctx, base.Code(), quote.Code())
	if !ok {
		s.logger.Error("all providers failed",
			slog.String("base", base.Code()), slog.String("quote", quote.Code()))
		return nil, fmt.Errorf("%w: all providers failed for %s/%s",
			apperrors.ErrServiceUnavailable, base.Code(), quote.Code())
	}

	fresh := domain.RateRecord{
		Base:        base.Code(),
		Quote:       quote.Code(),
		Rate:        rate,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.repo.UpsertRate(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to persist resolved rate: %w", err)
	}
	_ = s.cache.Put(ctx, pairKey, rate.String(), s.cacheTTL)

	// Re-read so the caller sees the store's authoritative timestamp.
	record, err = s.repo.FindRate(ctx, base.Code(), quote.Code())
	if err != nil {
		record = nil
	}

	return &Resolution{Rate: rate, Source: source, Record: record}, nil
}

// fetchFromProviders walks the chain in priority order, skipping providers
// with an open circuit and recording every failure against the breaker.
func (s *RateResolutionService) fetchFromProviders(ctx context.Context, base, quote string) (decimal.Decimal, string, bool) {
	for _, provider := range s.providers {
		name := provider.Name()

		if !s.breaker.Allow(ctx, name) {
			s.logger.Warn("skipping provider, circuit open", slog.String("provider", name))
			continue
		}

		rate, err := s.caller.FetchRate(ctx, provider, base, quote)
		if err != nil {
			if opened := s.breaker.RecordFailure(ctx, name); opened {
				s.logger.Warn("circuit opened for provider", slog.String("provider", name))
			} else {
				s.logger.Warn("provider error",
					slog.String("provider", name), slog.String("error", err.Error()))
			}
			continue
		}

		s.breaker.RecordSuccess(ctx, name)
		s.logger.Info("using provider",
			slog.String("provider", name),
			slog.String("pair", base+"/"+quote),
			slog.String("rate", rate.String()),
		)
		return rate, name, true
	}

	return decimal.Zero, "", false
}
