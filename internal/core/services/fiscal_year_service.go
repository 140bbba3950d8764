package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/validation"
	"github.com/google/uuid"
)

// fiscalYearService maintains the calendar of accounting periods.
type fiscalYearService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repo      portsrepo.FiscalYearRepositoryFacade
}

// FiscalYearOption configures the fiscal year service.
type FiscalYearOption func(*fiscalYearService)

// WithFiscalYearClock overrides the clock used for closedAt.
func WithFiscalYearClock(now func() time.Time) FiscalYearOption {
	return func(s *fiscalYearService) {
		s.now = now
	}
}

// NewFiscalYearService creates the fiscal year service.
func NewFiscalYearService(txManager portsrepo.TransactionManager, repo portsrepo.FiscalYearRepositoryFacade, options ...FiscalYearOption) portssvc.FiscalYearSvcFacade {
	svc := &fiscalYearService{txManager: txOrDirect(txManager), repo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         req.Name,
		StartDate:    domain.DateOnly(req.StartDate),
		EndDate:      domain.DateOnly(req.EndDate),
		AuditFields:  domain.NewAuditFields(s.Now(), userID),
	}
	if fy.EndDate.Before(fy.StartDate) {
		return nil, apperrors.NewValidationError("endDate", "must not be before startDate")
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.ListFiscalYears(ctx)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if other.Overlaps(fy) {
				return apperrors.NewDomainError("Fiscal year overlaps with %s", other.Name)
			}
		}
		if err := s.repo.SaveFiscalYear(ctx, fy); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewDomainError("Fiscal year already exists: %s", fy.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create fiscal year", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("name", fy.Name))
	return &fy, nil
}

// CloseFiscalYear stops further posting into the year. Closing twice is rejected.
func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	var fy *domain.FiscalYear
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.repo.FindFiscalYearByID(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		if fy.IsClosed {
			return apperrors.NewDomainError("Fiscal year %s is already closed", fy.Name)
		}
		now := s.Now()
		if err := s.repo.CloseFiscalYear(ctx, fiscalYearID, userID, now); err != nil {
			return err
		}
		fy.IsClosed = true
		fy.ClosedAt = &now
		fy.Touch(now, userID)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return fy, nil
}

func (s *fiscalYearService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.repo.FindFiscalYearByID(ctx, fiscalYearID)
}

func (s *fiscalYearService) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	return s.repo.FindFiscalYearForDate(ctx, date)
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx)
}
