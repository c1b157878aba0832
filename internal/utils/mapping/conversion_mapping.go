package mapping

import (
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	"github.com/mkarasev/currency_converter_app/internal/models"
)

// ToModelConversion converts a domain.Conversion to its persistence shape.
func ToModelConversion(d domain.Conversion) models.Conversion {
	return models.Conversion{
		ConversionID:    d.ConversionID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		BaseCurrency:    d.BaseCurrency,
		TargetCurrency:  d.TargetCurrency,
		ConvertedAmount: d.ConvertedAmount,
		RateUsed:        d.RateUsed,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainConversion converts a models.Conversion row to the domain shape.
func ToDomainConversion(m models.Conversion) domain.Conversion {
	return domain.Conversion{
		ConversionID:    m.ConversionID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		BaseCurrency:    m.BaseCurrency,
		TargetCurrency:  m.TargetCurrency,
		ConvertedAmount: m.ConvertedAmount,
		RateUsed:        m.RateUsed,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainConversionSlice converts a slice of models.Conversion to domain.Conversion.
func ToDomainConversionSlice(ms []models.Conversion) []domain.Conversion {
	ds := make([]domain.Conversion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConversion(m)
	}
	return ds
}
