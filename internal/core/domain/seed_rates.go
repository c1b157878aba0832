package domain

import "github.com/shopspring/decimal"

type currencyPair struct {
	Base   string
	Target string
}

// seedRates is the built-in table of common currency pairs used as a fallback
// before resorting to synthetic rates. Immutable after process start.
var seedRates = map[currencyPair]decimal.Decimal{
	{"USD", "EUR"}: decimal.RequireFromString("0.92"),
	{"EUR", "USD"}: decimal.RequireFromString("1.08"),
	{"USD", "RUB"}: decimal.RequireFromString("90.0"),
	{"EUR", "RUB"}: decimal.RequireFromString("98.0"),
	{"USD", "GBP"}: decimal.RequireFromString("0.79"),
	{"GBP", "USD"}: decimal.RequireFromString("1.27"),
	{"USD", "JPY"}: decimal.RequireFromString("148.0"),
	{"JPY", "USD"}: decimal.RequireFromString("0.0068"),
	{"EUR", "GBP"}: decimal.RequireFromString("0.86"),
	{"GBP", "EUR"}: decimal.RequireFromString("1.16"),
	{"RUB", "USD"}: decimal.RequireFromString("0.0111"),
	{"RUB", "EUR"}: decimal.RequireFromString("0.0102"),
}

// SeedRate returns the built-in fallback rate for an ordered currency pair,
// if one exists. Codes must already be normalized to uppercase.
func SeedRate(base, target string) (decimal.Decimal, bool) {
	rate, ok := seedRates[currencyPair{Base: base, Target: target}]
	return rate, ok
}
