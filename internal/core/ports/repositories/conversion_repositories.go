package repositories

import (
	"context"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
)

// ConversionWriter defines write operations for conversion history.
// Records are insert-only; there is no update or delete.
type ConversionWriter interface {
	SaveConversion(ctx context.Context, conversion domain.Conversion) error
}

// ConversionReader defines read operations for conversion history.
type ConversionReader interface {
	// FindConversionsByUser retrieves a user's conversions, newest first.
	FindConversionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Conversion, error)

	// ListConversions retrieves conversions across all users, newest first.
	ListConversions(ctx context.Context, limit, offset int) ([]domain.Conversion, error)
}

// ConversionRepositoryFacade combines all conversion-related repository interfaces.
type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}
