package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is the persistence shape of a currency_rates row.
// Note: Rate uses github.com/shopspring/decimal for precision.
type CurrencyRate struct {
	RateID         string          `db:"rate_id"`
	BaseCurrency   string          `db:"base_currency"`
	TargetCurrency string          `db:"target_currency"`
	Rate           decimal.Decimal `db:"rate"`
	IsActive       bool            `db:"is_active"`
	LastUpdated    time.Time       `db:"last_updated"`
}
