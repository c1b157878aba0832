package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a resolved exchange rate came from.
type RateSource string

const (
	// RateSourceDirect means an active stored rate for the exact ordered pair was used.
	RateSourceDirect RateSource = "direct"
	// RateSourceInverse means the rate was computed as 1/rate of the opposite pair.
	RateSourceInverse RateSource = "inverse"
	// RateSourceFixedSeed means the rate came from the built-in seed table.
	RateSourceFixedSeed RateSource = "fixed_seed"
	// RateSourceSynthetic means the rate was randomly generated as a placeholder.
	RateSourceSynthetic RateSource = "synthetic"
)

// CurrencyRate stores the conversion rate between two currencies.
// At most one active rate may exist per ordered (base, target) pair;
// the database enforces this with a partial unique index.
type CurrencyRate struct {
	RateID         string          `json:"rateID"`
	BaseCurrency   string          `json:"baseCurrency"`   // 3-letter uppercase code
	TargetCurrency string          `json:"targetCurrency"` // 3-letter uppercase code
	Rate           decimal.Decimal `json:"rate"`
	IsActive       bool            `json:"isActive"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
