package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal years.
type FiscalYearReaderSvc interface {
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriterSvc opens and closes fiscal years.
type FiscalYearWriterSvc interface {
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)
	CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}

// FiscalYearSvcFacade combines all fiscal year service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
