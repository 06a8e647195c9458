package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
)

// SupportedCurrencies is the set of currency codes this service accepts.
type SupportedCurrencies map[string]struct{}

// NewSupportedCurrencies builds the supported set from a list of codes.
// Codes are normalized to uppercase.
func NewSupportedCurrencies(codes []string) SupportedCurrencies {
	set := make(SupportedCurrencies, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the given code is in the supported set.
func (s SupportedCurrencies) Contains(code string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Currency is a validated 3-letter currency code. Immutable; equality is by code.
type Currency struct {
	code string
}

// NewCurrency validates the code against the supported set and returns the
// Currency value. Construction fails with apperrors.ErrValidation for codes
// outside the supported set.
func NewCurrency(code string, supported SupportedCurrencies) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !supported.Contains(normalized) {
		return Currency{}, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, normalized)
	}
	return Currency{code: normalized}, nil
}

// Code returns the 3-letter currency code.
func (c Currency) Code() string {
	return c.code
}

// Equals reports whether both currencies carry the same code.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}

func (c Currency) String() string {
	return c.code
}
