package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// Convert moves amount between two registered currencies through the base rate.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// ConvertToBase expresses amount in the base currency.
	ConvertToBase(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency registers a currency. Codes are unique and at most one currency is the base.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// EnsureCurrency returns the currency with req.Code, creating it when absent.
	EnsureCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// UpdateExchangeRate changes the rate of a non-base currency.
	UpdateExchangeRate(ctx context.Context, currencyID string, rate decimal.Decimal, userID string) (*domain.Currency, error)

	// SetBaseCurrency makes a currency the base, demoting the previous base.
	SetBaseCurrency(ctx context.Context, currencyID string, userID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
