package mapping

import (
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	"github.com/mkarasev/currency_converter_app/internal/models"
)

// ToModelCurrencyRate converts a domain.CurrencyRate to its persistence shape.
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		RateID:         d.RateID,
		BaseCurrency:   d.BaseCurrency,
		TargetCurrency: d.TargetCurrency,
		Rate:           d.Rate,
		IsActive:       d.IsActive,
		LastUpdated:    d.LastUpdated,
	}
}

// ToDomainCurrencyRate converts a models.CurrencyRate row to the domain shape.
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		RateID:         m.RateID,
		BaseCurrency:   m.BaseCurrency,
		TargetCurrency: m.TargetCurrency,
		Rate:           m.Rate,
		IsActive:       m.IsActive,
		LastUpdated:    m.LastUpdated,
	}
}

// ToDomainCurrencyRateSlice converts a slice of models.CurrencyRate to domain.CurrencyRate.
func ToDomainCurrencyRateSlice(ms []models.CurrencyRate) []domain.CurrencyRate {
	ds := make([]domain.CurrencyRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyRate(m)
	}
	return ds
}
