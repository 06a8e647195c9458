package services

import (
	"context"
	"net/http"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	portsrepo "github.com/SscSPs/currency_exchange_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/dto"
)

const healthCheckKey = "health_check"

// Representative pair used for the lightweight provider probes.
const (
	healthProbeBase  = "USD"
	healthProbeQuote = "EUR"
)

// HealthService aggregates a store ping, a cache round trip and a lightweight
// request per provider into one ok/fail report. It never mutates resolution
// state: the only write is its own scratch cache key.
type HealthService struct {
	repo      portsrepo.RateRepositoryFacade
	cache     ports.TTLCache
	providers []ports.RateProvider
	client    *http.Client
	timeout   time.Duration
}

// NewHealthService creates a new HealthService.
func NewHealthService(
	repo portsrepo.RateRepositoryFacade,
	cache ports.TTLCache,
	providers []ports.RateProvider,
	timeout time.Duration,
) *HealthService {
	return &HealthService{
		repo:      repo,
		cache:     cache,
		providers: providers,
		client:    &http.Client{},
		timeout:   timeout,
	}
}

// Check probes every dependency independently and aggregates the results.
func (s *HealthService) Check(ctx context.Context) dto.HealthReport {
	report := dto.HealthReport{
		Components: dto.HealthComponents{
			Database:          dto.HealthOK,
			Cache:             dto.HealthOK,
			ExternalProviders: make(map[string]string, len(s.providers)),
		},
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Ping(ctx); err != nil {
		report.Components.Database = dto.HealthFail
	}

	report.Components.Cache = s.checkCache(ctx)

	for _, provider := range s.providers {
		report.Components.ExternalProviders[provider.Name()] = s.checkProvider(ctx, provider)
	}

	report.Status = dto.HealthOK
	if !report.Healthy() {
		report.Status = dto.HealthFail
	}
	return report
}

func (s *HealthService) checkCache(ctx context.Context) string {
	if err := s.cache.Put(ctx, healthCheckKey, dto.HealthOK, 2*time.Second); err != nil {
		return dto.HealthFail
	}
	value, ok, err := s.cache.Get(ctx, healthCheckKey)
	if err != nil || !ok || value != dto.HealthOK {
		return dto.HealthFail
	}
	return dto.HealthOK
}

func (s *HealthService) checkProvider(ctx context.Context, provider ports.RateProvider) string {
	endpoint, query := provider.BuildRequest(healthProbeBase, healthProbeQuote)

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return dto.HealthFail
	}
	req.URL.RawQuery = query.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return dto.HealthFail
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return dto.HealthFail
	}
	return dto.HealthOK
}

var _ portssvc.HealthSvcFacade = (*HealthService)(nil)
