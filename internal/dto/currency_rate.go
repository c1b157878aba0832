package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkarasev/currency_converter_app/internal/core/domain"
)

// CreateRateRequest defines the payload for creating a new currency rate.
// Codes are normalized to uppercase by the service before use.
type CreateRateRequest struct {
	BaseCurrency   string          `json:"baseCurrency" binding:"required,len=3,alpha"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,len=3,alpha"`
	Rate           decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateRateRequest defines the payload for updating an existing rate in place.
// IsActive is a pointer to distinguish "omitted" from "set to false".
type UpdateRateRequest struct {
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	IsActive *bool           `json:"isActive"`
}

// RateResponse defines the API shape of a currency rate.
type RateResponse struct {
	RateID         string          `json:"rateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	IsActive       bool            `json:"isActive"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// ListRatesParams defines query parameters for listing rates.
type ListRatesParams struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// ListRatesResponse wraps the list of rates.
type ListRatesResponse struct {
	Rates []RateResponse `json:"rates"`
}

// ToRateResponse converts a domain.CurrencyRate to RateResponse DTO.
func ToRateResponse(rate *domain.CurrencyRate) RateResponse {
	return RateResponse{
		RateID:         rate.RateID,
		BaseCurrency:   rate.BaseCurrency,
		TargetCurrency: rate.TargetCurrency,
		Rate:           rate.Rate,
		IsActive:       rate.IsActive,
		LastUpdated:    rate.LastUpdated,
	}
}

// ToListRatesResponse converts a slice of domain.CurrencyRate to ListRatesResponse DTO.
func ToListRatesResponse(rates []domain.CurrencyRate) ListRatesResponse {
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return ListRatesResponse{Rates: responses}
}
