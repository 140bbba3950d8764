package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencySelect = `
SELECT currency_id, code, name, symbol, exchange_rate, is_base, created_at, created_by, last_updated_at, last_updated_by
FROM currencies
`

func (r *PgxCurrencyRepository) getCurrency(ctx context.Context, key, filterQuery string, args ...any) (*domain.Currency, error) {
	rows, err := r.db(ctx).Query(ctx, currencySelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currency", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, mapReadError(err, "currency", key)
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return r.getCurrency(ctx, currencyID, "WHERE currency_id = $1", currencyID)
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return r.getCurrency(ctx, code, "WHERE code = $1", code)
}

func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	return r.getCurrency(ctx, "base", "WHERE is_base")
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.db(ctx).Query(ctx, currencySelect+"ORDER BY code")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect currency rows", err)
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (currency_id, code, name, symbol, exchange_rate, is_base,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CurrencyID, m.Code, m.Name, m.Symbol, m.ExchangeRate, m.IsBase,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "currency "+m.Code)
	}
	return nil
}

func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		UPDATE currencies
		SET name = $2, symbol = $3, exchange_rate = $4, is_base = $5, last_updated_at = $6, last_updated_by = $7
		WHERE currency_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, m.CurrencyID, m.Name, m.Symbol, m.ExchangeRate, m.IsBase, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "currency "+m.Code)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("currency", m.CurrencyID)
	}
	return nil
}
