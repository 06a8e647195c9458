package services

import (
	"context"

	"github.com/SscSPs/currency_exchange_service/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade defines the conversion operations consumed by handlers.
type ConversionSvcFacade interface {
	// Convert resolves the rate for from -> to and applies it to amount.
	// Fails with apperrors.ErrValidation on bad domain input and
	// apperrors.ErrServiceUnavailable when the provider chain is exhausted.
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*dto.ConvertResponse, error)
}

// HealthSvcFacade defines the read-only health probe.
type HealthSvcFacade interface {
	// Check probes the store, the cache and each provider endpoint without
	// mutating resolution state.
	Check(ctx context.Context) dto.HealthReport
}

// RateSyncSvcFacade defines the scheduled rate aggregation job.
type RateSyncSvcFacade interface {
	// SyncRates aggregates rates across all providers for the configured
	// pairs and persists the medians. Returns the number of pairs updated.
	SyncRates(ctx context.Context) (int, error)
}
