package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

const fiscalYearSelect = `
SELECT fiscal_year_id, name, start_date, end_date, is_closed, closed_at,
	created_at, created_by, last_updated_at, last_updated_by
FROM fiscal_years
`

func (r *PgxFiscalYearRepository) getFiscalYear(ctx context.Context, key, filterQuery string, args ...any) (*domain.FiscalYear, error) {
	rows, err := r.db(ctx).Query(ctx, fiscalYearSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal year", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FiscalYear])
	if err != nil {
		return nil, mapReadError(err, "fiscal year", key)
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return r.getFiscalYear(ctx, fiscalYearID, "WHERE fiscal_year_id = $1", fiscalYearID)
}

func (r *PgxFiscalYearRepository) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	d := domain.DateOnly(date)
	return r.getFiscalYear(ctx, d.Format("2006-01-02"),
		"WHERE $1 BETWEEN start_date AND end_date ORDER BY start_date LIMIT 1", d)
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	rows, err := r.db(ctx).Query(ctx, fiscalYearSelect+"ORDER BY start_date")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FiscalYear])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect fiscal year rows", err)
	}
	out := make([]domain.FiscalYear, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainFiscalYear(m)
	}
	return out, nil
}

func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	query := `
		INSERT INTO fiscal_years (fiscal_year_id, name, start_date, end_date, is_closed, closed_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.FiscalYearID, m.Name, m.StartDate, m.EndDate, m.IsClosed, m.ClosedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "fiscal year "+m.Name)
	}
	return nil
}

func (r *PgxFiscalYearRepository) CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_years
		SET is_closed = TRUE, closed_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_year_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, fiscalYearID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal year", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fiscal year", fiscalYearID)
	}
	return nil
}
