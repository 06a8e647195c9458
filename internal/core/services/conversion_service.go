package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/dto"
	"github.com/shopspring/decimal"
)

// rateResolver is the slice of the resolution engine the conversion service
// needs; it lets tests substitute a fake engine.
type rateResolver interface {
	Resolve(ctx context.Context, base, quote domain.Currency) (*Resolution, error)
}

// ConversionService turns validated conversion requests into responses by
// resolving a rate and applying it through the domain value types.
type ConversionService struct {
	resolver  rateResolver
	supported domain.SupportedCurrencies
}

// NewConversionService creates a new ConversionService.
func NewConversionService(resolver rateResolver, supported domain.SupportedCurrencies) *ConversionService {
	return &ConversionService{
		resolver:  resolver,
		supported: supported,
	}
}

// Convert resolves the rate for from -> to and applies it to amount.
func (s *ConversionService) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*dto.ConvertResponse, error) {
	fromCurrency, err := domain.NewCurrency(from, s.supported)
	if err != nil {
		return nil, err
	}
	toCurrency, err := domain.NewCurrency(to, s.supported)
	if err != nil {
		return nil, err
	}
	money, err := domain.NewMoney(amount, fromCurrency)
	if err != nil {
		return nil, err
	}

	resolution, err := s.resolver.Resolve(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	exchangeRate, err := domain.NewExchangeRate(fromCurrency, toCurrency, resolution.Rate)
	if err != nil {
		return nil, fmt.Errorf("resolved an unusable rate for %s/%s: %w", fromCurrency, toCurrency, err)
	}
	result, err := exchangeRate.Convert(money)
	if err != nil {
		return nil, err
	}

	lastUpdated := time.Now().UTC()
	if resolution.Record != nil {
		lastUpdated = resolution.Record.LastUpdated
	}

	return &dto.ConvertResponse{
		Data: dto.ConversionData{
			From:        fromCurrency.Code(),
			To:          toCurrency.Code(),
			Amount:      money.Format(),
			Result:      result.Format(),
			Rate:        resolution.Rate.String(),
			LastUpdated: lastUpdated,
		},
		Meta: dto.ConversionMeta{
			Source: resolution.Source,
		},
	}, nil
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)
