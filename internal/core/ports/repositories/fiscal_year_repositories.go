package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years.
type FiscalYearReader interface {
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearForDate returns the year containing date, or apperrors.ErrNotFound.
	FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	// ListFiscalYears returns all years ordered by start date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal years.
type FiscalYearWriter interface {
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error
	CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string, now time.Time) error
}

// FiscalYearRepositoryFacade combines all fiscal year repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
