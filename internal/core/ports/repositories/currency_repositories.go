package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindBaseCurrency returns apperrors.ErrNotFound until a base is registered.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. A taken code yields apperrors.ErrDuplicate.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency rewrites name, symbol, rate and base flag.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
