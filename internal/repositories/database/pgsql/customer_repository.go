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

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerSelect = `
SELECT customer_id, code, name, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by
FROM customers
`

func (r *PgxCustomerRepository) getCustomer(ctx context.Context, key, filterQuery string, args ...any) (*domain.Customer, error) {
	rows, err := r.db(ctx).Query(ctx, customerSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customer", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, mapReadError(err, "customer", key)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return r.getCustomer(ctx, customerID, "WHERE customer_id = $1", customerID)
}

func (r *PgxCustomerRepository) FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	return r.getCustomer(ctx, code, "WHERE code = $1", code)
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db(ctx).Query(ctx, customerSelect+"ORDER BY code")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect customer rows", err)
	}
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainCustomer(m)
	}
	return out, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, code, name, email, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CustomerID, m.Code, m.Name, m.Email, m.Address, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "customer "+m.Code)
	}
	return nil
}
