package services

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	portsrepo "github.com/SscSPs/currency_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/platform/config"
)

// NewServiceContainer wires the resolution engine, conversion, sync and
// health services from their shared dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repo portsrepo.RateRepositoryFacade,
	cache ports.TTLCache,
	providers []ports.RateProvider,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	breaker := NewCircuitBreaker(cache, cfg.BreakerFailureThreshold, cfg.BreakerFailureWindow, cfg.BreakerOpenDuration)

	resolver := NewRateResolutionService(
		repo, cache, providers, breaker,
		cfg.ProviderTimeout, cfg.ProviderAttempts, cfg.ProviderBackoff,
		cfg.CacheTTL, cfg.StoreFreshness,
		logger,
	)

	supported := domain.NewSupportedCurrencies(cfg.SupportedCurrencies)

	return &portssvc.ServiceContainer{
		Conversion: NewConversionService(resolver, supported),
		Health:     NewHealthService(repo, cache, providers, cfg.HealthTimeout),
		RateSync:   NewRateSyncService(repo, providers, parseSyncPairs(cfg.SyncPairs, logger), cfg.SyncTimeout, logger),
	}
}

// parseSyncPairs turns "USD/EUR" entries into domain pairs, dropping
// malformed ones with a log line instead of failing startup.
func parseSyncPairs(raw []string, logger *slog.Logger) []domain.Pair {
	pairs := make([]domain.Pair, 0, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			logger.Warn("ignoring malformed sync pair", slog.String("pair", entry))
			continue
		}
		pairs = append(pairs, domain.Pair{
			Base:  strings.ToUpper(strings.TrimSpace(parts[0])),
			Quote: strings.ToUpper(strings.TrimSpace(parts[1])),
		})
	}
	return pairs
}
