package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supportedSet() domain.SupportedCurrencies {
	return domain.NewSupportedCurrencies([]string{"USD", "EUR", "GBP"})
}

func mustCurrency(t *testing.T, code string) domain.Currency {
	t.Helper()
	currency, err := domain.NewCurrency(code, supportedSet())
	require.NoError(t, err)
	return currency
}

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
		want    string
	}{
		{name: "supported code", code: "USD", want: "USD"},
		{name: "lowercase is normalized", code: "eur", want: "EUR"},
		{name: "surrounding whitespace is trimmed", code: " gbp ", want: "GBP"},
		{name: "unsupported code fails", code: "XXX", wantErr: true},
		{name: "empty code fails", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currency, err := domain.NewCurrency(tt.code, supportedSet())
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, currency.Code())
		})
	}
}

func TestCurrency_Equals(t *testing.T) {
	usd := mustCurrency(t, "USD")
	alsoUSD := mustCurrency(t, "usd")
	eur := mustCurrency(t, "EUR")

	assert.True(t, usd.Equals(alsoUSD))
	assert.False(t, usd.Equals(eur))
}

func TestNewMoney(t *testing.T) {
	usd := mustCurrency(t, "USD")

	money, err := domain.NewMoney(decimal.NewFromFloat(100.5), usd)
	require.NoError(t, err)
	assert.Equal(t, "100.50", money.Format())
	assert.Equal(t, usd, money.Currency())

	_, err = domain.NewMoney(decimal.NewFromFloat(-0.01), usd)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	zero, err := domain.NewMoney(decimal.Zero, usd)
	require.NoError(t, err)
	assert.Equal(t, "0.00", zero.Format())
}

func TestMoney_InternalScale(t *testing.T) {
	usd := mustCurrency(t, "USD")

	// Construction truncates to 6 decimal places.
	money, err := domain.NewMoney(decimal.RequireFromString("1.123456789"), usd)
	require.NoError(t, err)
	assert.True(t, money.Amount().Equal(decimal.RequireFromString("1.123456")))
}

func TestMoney_Multiply(t *testing.T) {
	usd := mustCurrency(t, "USD")
	money, err := domain.NewMoney(decimal.NewFromInt(3), usd)
	require.NoError(t, err)

	product := money.Multiply(decimal.RequireFromString("0.3333333333"))
	assert.True(t, product.Amount().Equal(decimal.RequireFromString("0.999999")))
	assert.Equal(t, usd, product.Currency())
}

func TestNewExchangeRate(t *testing.T) {
	usd := mustCurrency(t, "USD")
	eur := mustCurrency(t, "EUR")

	_, err := domain.NewExchangeRate(usd, eur, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewExchangeRate(usd, eur, decimal.NewFromFloat(-1.2))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	rate, err := domain.NewExchangeRate(usd, eur, decimal.NewFromFloat(0.92))
	require.NoError(t, err)
	assert.Equal(t, usd, rate.Base())
	assert.Equal(t, eur, rate.Quote())
}

func TestExchangeRate_Convert(t *testing.T) {
	usd := mustCurrency(t, "USD")
	eur := mustCurrency(t, "EUR")

	rate, err := domain.NewExchangeRate(usd, eur, decimal.NewFromFloat(0.92))
	require.NoError(t, err)

	money, err := domain.NewMoney(decimal.NewFromInt(100), usd)
	require.NoError(t, err)

	converted, err := rate.Convert(money)
	require.NoError(t, err)
	assert.Equal(t, "92.00", converted.Format())
	assert.Equal(t, eur, converted.Currency())
}

func TestExchangeRate_Convert_CurrencyMismatch(t *testing.T) {
	usd := mustCurrency(t, "USD")
	eur := mustCurrency(t, "EUR")
	gbp := mustCurrency(t, "GBP")

	rate, err := domain.NewExchangeRate(usd, eur, decimal.NewFromFloat(0.92))
	require.NoError(t, err)

	money, err := domain.NewMoney(decimal.NewFromInt(100), gbp)
	require.NoError(t, err)

	_, err = rate.Convert(money)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExchangeRate_Convert_PreservesInternalPrecision(t *testing.T) {
	usd := mustCurrency(t, "USD")
	eur := mustCurrency(t, "EUR")

	rate, err := domain.NewExchangeRate(usd, eur, decimal.RequireFromString("0.123456"))
	require.NoError(t, err)

	money, err := domain.NewMoney(decimal.NewFromInt(1), usd)
	require.NoError(t, err)

	converted, err := rate.Convert(money)
	require.NoError(t, err)

	// 6 decimal places survive internally; display rounding happens in Format.
	assert.True(t, converted.Amount().Equal(decimal.RequireFromString("0.123456")))
	assert.Equal(t, "0.12", converted.Format())
}

func TestRateRecord_OlderThan(t *testing.T) {
	record := domain.RateRecord{LastUpdated: time.Now().Add(-30 * time.Minute)}
	assert.False(t, record.OlderThan(time.Hour))

	stale := domain.RateRecord{LastUpdated: time.Now().Add(-2 * time.Hour)}
	assert.True(t, stale.OlderThan(time.Hour))
}
