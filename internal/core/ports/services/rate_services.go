package services

import (
	"context"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	"github.com/mkarasev/currency_converter_app/internal/dto"
)

// RateReaderSvc defines read operations for currency rate data.
type RateReaderSvc interface {
	// GetActiveRate retrieves the active rate for an exact ordered pair.
	// apperrors.ErrNotFound means no rate is configured, not a fault.
	GetActiveRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.CurrencyRate, error)

	// ListRates retrieves stored rate rows, newest first.
	ListRates(ctx context.Context, limit, offset int) ([]domain.CurrencyRate, error)
}

// RateWriterSvc defines the admin write operations for currency rates.
type RateWriterSvc interface {
	// CreateRate inserts a new active rate, deactivating any active sibling
	// for the same ordered pair.
	CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.CurrencyRate, error)

	// UpdateRate mutates an existing rate row in place.
	UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest) (*domain.CurrencyRate, error)

	// DeleteRate hard-deletes a rate row.
	DeleteRate(ctx context.Context, rateID string) error

	// ToggleRate flips the active flag of a rate row and returns the updated row.
	ToggleRate(ctx context.Context, rateID string) (*domain.CurrencyRate, error)
}

// RateSvcFacade combines all currency-rate service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
