package domain

import (
	"fmt"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeRate converts money denominated in its base currency into its quote
// currency. The rate is strictly positive; construction fails otherwise.
type ExchangeRate struct {
	base  Currency
	quote Currency
	rate  decimal.Decimal
}

// NewExchangeRate constructs an ExchangeRate. Fails with
// apperrors.ErrValidation if the rate is not positive.
func NewExchangeRate(base, quote Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return ExchangeRate{base: base, quote: quote, rate: rate}, nil
}

// Base returns the base currency of the pair.
func (r ExchangeRate) Base() Currency {
	return r.base
}

// Quote returns the quote currency of the pair.
func (r ExchangeRate) Quote() Currency {
	return r.quote
}

// Rate returns the conversion rate.
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.rate
}

// Convert applies the rate to money denominated in the base currency and
// returns the equivalent amount in the quote currency. Fails with
// apperrors.ErrValidation when the money's currency does not match the base.
func (r ExchangeRate) Convert(m Money) (Money, error) {
	if !m.Currency().Equals(r.base) {
		return Money{}, fmt.Errorf("%w: cannot convert from %s using base %s",
			apperrors.ErrValidation, m.Currency(), r.base)
	}
	return NewMoney(m.Amount().Mul(r.rate).Truncate(moneyScale), r.quote)
}
