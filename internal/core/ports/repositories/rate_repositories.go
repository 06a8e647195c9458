package repositories

import (
	"context"

	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
)

// RateReader defines read operations for persisted currency rates
type RateReader interface {
	// FindRate retrieves the stored rate record for a currency pair.
	// Returns apperrors.ErrNotFound when no record exists.
	FindRate(ctx context.Context, base, quote string) (*domain.RateRecord, error)
}

// RateWriter defines write operations for persisted currency rates
type RateWriter interface {
	// UpsertRate inserts or updates the record for its (base, quote) pair.
	UpsertRate(ctx context.Context, record domain.RateRecord) error

	// UpsertRatesBatch persists all records in a single transaction;
	// either every record commits or none do.
	UpsertRatesBatch(ctx context.Context, records []domain.RateRecord) error
}

// RateRepositoryFacade combines all rate-related repository interfaces.
// This is a facade for clients that need access to all operations.
type RateRepositoryFacade interface {
	RateReader
	RateWriter

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
