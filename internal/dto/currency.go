package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to register a currency.
// A zero rate defaults to 1. Registering a base currency demotes the previous one.
type CreateCurrencyRequest struct {
	Code         string          `json:"code" binding:"required,uppercase,len=3"`
	Name         string          `json:"name" binding:"required,max=50"`
	Symbol       string          `json:"symbol" binding:"max=5"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsBase       bool            `json:"isBase"`
}

// UpdateExchangeRateRequest carries a new rate against the base currency.
type UpdateExchangeRateRequest struct {
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// ConvertParams defines the query parameters for a conversion.
type ConvertParams struct {
	Amount decimal.Decimal `form:"amount"`
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"omitempty,len=3"` // Empty means the base currency
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string          `json:"currencyID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	IsBase        bool            `json:"isBase"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListCurrenciesResponse wraps a list of currencies.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ConversionResponse reports a converted amount.
type ConversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    c.CurrencyID,
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		ExchangeRate:  c.ExchangeRate,
		IsBase:        c.IsBase,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCurrenciesResponse converts a slice of domain.Currency
func ToListCurrenciesResponse(currencies []domain.Currency) ListCurrenciesResponse {
	out := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		out[i] = ToCurrencyResponse(&currencies[i])
	}
	return ListCurrenciesResponse{Currencies: out}
}
