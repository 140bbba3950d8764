package models

import "github.com/shopspring/decimal"

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyID   string          `db:"currency_id"`
	Code         string          `db:"code"`
	Name         string          `db:"name"`
	Symbol       string          `db:"symbol"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	IsBase       bool            `db:"is_base"`
	AuditFields
}
