package repositories

import (
	"context"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
)

// CurrencyRateReader defines read operations for currency rate data.
type CurrencyRateReader interface {
	// FindActiveRate retrieves the active rate for an exact ordered pair.
	// Returns apperrors.ErrNotFound when no active rate is configured.
	FindActiveRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.CurrencyRate, error)

	// FindRateByID retrieves a rate row by its identifier.
	FindRateByID(ctx context.Context, rateID string) (*domain.CurrencyRate, error)

	// ListRates retrieves rate rows, newest first.
	ListRates(ctx context.Context, limit, offset int) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriter defines write operations for currency rate data.
type CurrencyRateWriter interface {
	// CreateActiveRate deactivates any active sibling for the same ordered
	// pair and inserts the given rate as active, in a single transaction.
	CreateActiveRate(ctx context.Context, rate domain.CurrencyRate) error

	// UpdateRate mutates an existing rate row in place. It does not touch
	// sibling rows; reactivating a row while another is active surfaces
	// apperrors.ErrDuplicate from the partial unique index.
	UpdateRate(ctx context.Context, rate domain.CurrencyRate) error

	// DeleteRate hard-deletes a rate row.
	DeleteRate(ctx context.Context, rateID string) error
}

// CurrencyRateRepositoryFacade combines all currency-rate repository interfaces.
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}
