package domain

import "github.com/shopspring/decimal"

// CatalogItem is a static purchasable item definition.
// BasePrice is in the reference fiat unit; GeneratePerSecond is the passive
// accrual rate; CurrencyCode names the oracle-tracked unit used for conversion.
type CatalogItem struct {
	Ref               string          `json:"ref"`
	Name              string          `json:"name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	GeneratePerSecond decimal.Decimal `json:"generate_per_seconds"`
	CurrencyCode      string          `json:"currency_code"`
	XPAward           decimal.Decimal `json:"xp"`
}

// RatePerHour returns the accrual rate expressed per hour.
func (c CatalogItem) RatePerHour() decimal.Decimal {
	return c.GeneratePerSecond.Mul(decimal.NewFromInt(3600))
}
