package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// upsertRateQuery writes a rate keyed by its (base, quote) pair. The unique
// constraint makes concurrent upserts for the same pair last-writer-wins
// instead of corrupting the row.
const upsertRateQuery = `
	INSERT INTO currency_rates (base, quote, rate, last_updated)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (base, quote)
	DO UPDATE SET rate = EXCLUDED.rate, last_updated = EXCLUDED.last_updated;
`

// PgxRateRepository implements the rate repository ports using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindRate retrieves the stored rate record for a currency pair.
func (r *PgxRateRepository) FindRate(ctx context.Context, base, quote string) (*domain.RateRecord, error) {
	query := `
		SELECT base, quote, rate, last_updated
		FROM currency_rates
		WHERE base = $1 AND quote = $2;
	`

	var record domain.RateRecord
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(base), strings.ToUpper(quote)).Scan(
		&record.Base, &record.Quote, &record.Rate, &record.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate for pair %s/%s", apperrors.ErrNotFound, base, quote)
		}
		return nil, fmt.Errorf("failed to find rate: %w", err)
	}

	return &record, nil
}

// UpsertRate inserts or updates the record for its (base, quote) pair.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, record domain.RateRecord) error {
	_, err := r.Pool.Exec(ctx, upsertRateQuery,
		strings.ToUpper(record.Base), strings.ToUpper(record.Quote),
		record.Rate, record.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate for %s/%s: %w", record.Base, record.Quote, err)
	}
	return nil
}

// UpsertRatesBatch persists all records in a single transaction. A failure
// mid-batch rolls back every write from this call.
func (r *PgxRateRepository) UpsertRatesBatch(ctx context.Context, records []domain.RateRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		_, err = tx.Exec(ctx, upsertRateQuery,
			strings.ToUpper(record.Base), strings.ToUpper(record.Quote),
			record.Rate, record.LastUpdated,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("failed to upsert rate for %s/%s in batch: %w", record.Base, record.Quote, err)
		}
	}

	return r.Commit(ctx, tx)
}

// Ping verifies the backing store is reachable.
func (r *PgxRateRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}
