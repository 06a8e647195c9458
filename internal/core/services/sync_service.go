package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	portsrepo "github.com/SscSPs/currency_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RateSyncService aggregates rates across all providers for a fixed pair list
// and persists the median of the successful results. Unlike the live path it
// fans out to every provider concurrently, never consults the circuit
// breaker, and never retries within a run.
type RateSyncService struct {
	repo      portsrepo.RateWriter
	providers []ports.RateProvider
	caller    *providerCaller
	pairs     []domain.Pair
	logger    *slog.Logger
}

// NewRateSyncService creates a new RateSyncService. callTimeout bounds each
// provider request independently so one slow provider cannot stall the others
// beyond its own budget.
func NewRateSyncService(
	repo portsrepo.RateWriter,
	providers []ports.RateProvider,
	pairs []domain.Pair,
	callTimeout time.Duration,
	logger *slog.Logger,
) *RateSyncService {
	return &RateSyncService{
		repo:      repo,
		providers: providers,
		caller:    newProviderCaller(callTimeout, 1, 0),
		pairs:     pairs,
		logger:    logger,
	}
}

// SyncRates computes a median consensus rate for every configured pair and
// persists all of them in a single transaction. Pairs where no provider
// produced a rate are skipped, leaving the stored record untouched. Returns
// the number of pairs updated.
func (s *RateSyncService) SyncRates(ctx context.Context) (int, error) {
	s.logger.Info("starting currency rates sync")

	var results []domain.RateRecord
	for _, pair := range s.pairs {
		rates := s.collectRates(ctx, pair)
		if len(rates) == 0 {
			s.logger.Error("all providers failed", slog.String("pair", pair.String()))
			continue
		}
		results = append(results, domain.RateRecord{
			Base:        pair.Base,
			Quote:       pair.Quote,
			Rate:        median(rates),
			LastUpdated: time.Now().UTC(),
		})
	}

	if len(results) > 0 {
		if err := s.repo.UpsertRatesBatch(ctx, results); err != nil {
			return 0, fmt.Errorf("failed to persist synced rates: %w", err)
		}
	}

	s.logger.Info("currency rates sync completed", slog.Int("updated", len(results)))
	return len(results), nil
}

// collectRates fans out to every provider concurrently and gathers the rates
// that extracted successfully; failures are logged and discarded.
func (s *RateSyncService) collectRates(ctx context.Context, pair domain.Pair) []decimal.Decimal {
	var (
		mu    sync.Mutex
		rates []decimal.Decimal
		wg    sync.WaitGroup
	)

	for _, provider := range s.providers {
		wg.Add(1)
		go func(provider ports.RateProvider) {
			defer wg.Done()

			rate, err := s.caller.FetchRate(ctx, provider, pair.Base, pair.Quote)
			if err != nil {
				s.logger.Warn("provider failed during sync",
					slog.String("provider", provider.Name()),
					slog.String("pair", pair.String()),
					slog.String("error", err.Error()),
				)
				return
			}

			s.logger.Info("provider returned rate",
				slog.String("provider", provider.Name()),
				slog.String("pair", pair.String()),
				slog.String("rate", rate.String()),
			)

			mu.Lock()
			rates = append(rates, rate)
			mu.Unlock()
		}(provider)
	}

	wg.Wait()
	return rates
}

// median sorts ascending and takes the middle element for an odd count, or
// the mean of the two central elements for an even count.
func median(rates []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(rates))
	copy(sorted, rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return decimal.Avg(sorted[n/2-1], sorted[n/2])
}

var _ portssvc.RateSyncSvcFacade = (*RateSyncService)(nil)
