package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func (s *Store) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	defer s.read(ctx)()

	fy, ok := s.fiscalYears[fiscalYearID]
	if !ok {
		return nil, apperrors.NewNotFoundError("fiscal year", fiscalYearID)
	}
	return &fy, nil
}

func (s *Store) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	defer s.read(ctx)()

	for _, fy := range s.fiscalYears {
		if fy.Contains(date) {
			return &fy, nil
		}
	}
	return nil, apperrors.NewNotFoundError("fiscal year for date", date.Format("2006-01-02"))
}

func (s *Store) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	defer s.read(ctx)()

	out := make([]domain.FiscalYear, 0, len(s.fiscalYears))
	for _, fy := range s.fiscalYears {
		out = append(out, fy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *Store) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	defer s.write(ctx)()

	for _, existing := range s.fiscalYears {
		if existing.Name == fy.Name {
			return apperrors.ErrDuplicate
		}
	}
	s.fiscalYears[fy.FiscalYearID] = fy
	return nil
}

func (s *Store) CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string, now time.Time) error {
	defer s.write(ctx)()

	fy, ok := s.fiscalYears[fiscalYearID]
	if !ok {
		return apperrors.NewNotFoundError("fiscal year", fiscalYearID)
	}
	fy.IsClosed = true
	closedAt := now
	fy.ClosedAt = &closedAt
	fy.Touch(now, userID)
	s.fiscalYears[fiscalYearID] = fy
	return nil
}
