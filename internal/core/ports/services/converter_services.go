package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	"github.com/mkarasev/currency_converter_app/internal/dto"
)

// RateResolverSvc resolves an exchange rate for any ordered currency pair.
// Resolution is total: it always produces a usable rate, degrading from
// stored data to seeded and finally synthetic placeholder data.
type RateResolverSvc interface {
	ResolveRate(ctx context.Context, baseCurrency, targetCurrency string) (decimal.Decimal, domain.RateSource, error)
}

// ConversionRecorderSvc executes conversions and reads conversion history.
type ConversionRecorderSvc interface {
	// Convert resolves a rate, computes the converted amount and persists an
	// immutable history record for the user.
	Convert(ctx context.Context, userID string, req dto.ConversionRequest) (*domain.Conversion, domain.RateSource, error)

	// ListUserConversions retrieves a user's history, newest first.
	ListUserConversions(ctx context.Context, userID string, limit, offset int) ([]domain.Conversion, error)

	// ListAllConversions retrieves history across all users, newest first.
	ListAllConversions(ctx context.Context, limit, offset int) ([]domain.Conversion, error)
}

// ConverterSvcFacade combines rate resolution and conversion recording.
type ConverterSvcFacade interface {
	RateResolverSvc
	ConversionRecorderSvc
}
