package domain

import (
	"fmt"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	"github.com/shopspring/decimal"
)

// moneyScale is the internal precision kept for monetary amounts.
const moneyScale = 6

// displayScale is the precision used when formatting amounts for API responses.
const displayScale = 2

// Money pairs a non-negative decimal amount with a Currency. Immutable.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney constructs a Money value. Construction fails with
// apperrors.ErrValidation if the amount is negative. The amount is truncated
// to the internal 6-digit scale.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}
	return Money{amount: amount.Truncate(moneyScale), currency: currency}, nil
}

// Amount returns the internal decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency the amount is denominated in.
func (m Money) Currency() Currency {
	return m.currency
}

// Multiply returns a new Money in the same currency with the amount scaled by
// rate, truncated to the internal scale.
func (m Money) Multiply(rate decimal.Decimal) Money {
	return Money{
		amount:   m.amount.Mul(rate).Truncate(moneyScale),
		currency: m.currency,
	}
}

// Format renders the amount with 2 display decimals.
func (m Money) Format() string {
	return m.amount.StringFixed(displayScale)
}

func (m Money) String() string {
	return m.Format()
}
