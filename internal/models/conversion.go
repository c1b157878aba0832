package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is the persistence shape of a conversion_history row.
// Rows are insert-only; no update or delete path exists.
type Conversion struct {
	ConversionID    string          `db:"conversion_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	BaseCurrency    string          `db:"base_currency"`
	TargetCurrency  string          `db:"target_currency"`
	ConvertedAmount decimal.Decimal `db:"converted_amount"`
	RateUsed        decimal.Decimal `db:"rate_used"`
	CreatedAt       time.Time       `db:"created_at"`
}
