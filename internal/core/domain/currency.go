package domain

import "github.com/shopspring/decimal"

// Currency is a registry entry. ExchangeRate is units of this currency per
// one unit of the base currency, so the base currency always carries 1.
type Currency struct {
	CurrencyID   string          `json:"currencyID"`
	Code         string          `json:"code"`   // ISO 4217, e.g. "USD"
	Name         string          `json:"name"`   // e.g. "US Dollar"
	Symbol       string          `json:"symbol"` // e.g. "$"
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsBase       bool            `json:"isBase"`
	AuditFields
}

// Scales used when converting between currencies.
const (
	conversionScale = 6
	moneyScale      = 2
)

// ToBase expresses amount in the base currency, rounded to cents.
func (c Currency) ToBase(amount decimal.Decimal) decimal.Decimal {
	if c.IsBase {
		return amount
	}
	return amount.DivRound(c.ExchangeRate, moneyScale)
}

// Convert moves amount from one currency to another through the base currency.
// Same-currency conversions return amount unchanged.
func Convert(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from.CurrencyID == to.CurrencyID {
		return amount
	}
	inBase := amount.DivRound(from.ExchangeRate, conversionScale)
	return inBase.Mul(to.ExchangeRate).Round(moneyScale)
}
