package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is an immutable record of one executed currency conversion.
// It captures the rate actually used at resolution time; later changes to
// the rate table never alter historical records.
type Conversion struct {
	ConversionID    string          `json:"conversionID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // rounded to 2 decimal places
	RateUsed        decimal.Decimal `json:"rateUsed"`
	CreatedAt       time.Time       `json:"createdAt"`
}
