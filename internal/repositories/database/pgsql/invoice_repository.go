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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoices and their items.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
SELECT invoice_id, invoice_number, customer_id, currency_code, invoice_date, due_date, status,
	subtotal, tax_amount, total_amount, paid_amount, paid_date, notes, journal_entry_id, payment_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
FROM invoices
`

func (r *PgxInvoiceRepository) loadItems(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceItem, error) {
	grouped := make(map[string][]models.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return grouped, nil
	}
	rows, err := r.db(ctx).Query(ctx, `
		SELECT item_id, invoice_id, line_number, description, quantity, unit_price, amount
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, line_number`, invoiceIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice items", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InvoiceItem])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect invoice items", err)
	}
	for _, it := range items {
		grouped[it.InvoiceID] = append(grouped[it.InvoiceID], it)
	}
	return grouped, nil
}

func (r *PgxInvoiceRepository) getInvoices(ctx context.Context, filterQuery string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db(ctx).Query(ctx, invoiceSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect invoice rows", err)
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.InvoiceID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invoice, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainInvoice(h, items[h.InvoiceID])
	}
	return out, nil
}

func (r *PgxInvoiceRepository) getInvoice(ctx context.Context, key, filterQuery string, args ...any) (*domain.Invoice, error) {
	invoices, err := r.getInvoices(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, apperrors.NewNotFoundError("invoice", key)
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.getInvoice(ctx, invoiceID, "WHERE invoice_id = $1", invoiceID)
}

func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.getInvoice(ctx, invoiceID, "WHERE invoice_id = $1 FOR UPDATE", invoiceID)
}

func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	return r.getInvoice(ctx, invoiceNumber, "WHERE invoice_number = $1", invoiceNumber)
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	return r.getInvoices(ctx, `
		WHERE ($1::text = '' OR status = $1) AND ($2::text = '' OR customer_id = $2)
		ORDER BY invoice_date DESC, invoice_number DESC`,
		string(filter.Status), filter.CustomerID)
}

// ListOverdueInvoices returns sent invoices whose due date is before today.
func (r *PgxInvoiceRepository) ListOverdueInvoices(ctx context.Context, today time.Time) ([]domain.Invoice, error) {
	return r.getInvoices(ctx, `
		WHERE status = $1 AND due_date < $2
		ORDER BY invoice_date DESC, invoice_number DESC`,
		string(domain.InvoiceSent), domain.DateOnly(today))
}

func (r *PgxInvoiceRepository) insertItems(ctx context.Context, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		m := mapping.ToModelInvoiceItem(it)
		batch.Queue(`
			INSERT INTO invoice_items (item_id, invoice_id, line_number, description, quantity, unit_price, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			m.ItemID, m.InvoiceID, m.LineNumber, m.Description, m.Quantity, m.UnitPrice, m.Amount,
		)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return mapWriteError(err, "invoice item")
		}
	}
	return nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (invoice_id, invoice_number, customer_id, currency_code, invoice_date, due_date, status,
			subtotal, tax_amount, total_amount, paid_amount, paid_date, notes, journal_entry_id, payment_entry_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.InvoiceID, m.InvoiceNumber, m.CustomerID, m.CurrencyCode, m.InvoiceDate, m.DueDate, m.Status,
		m.Subtotal, m.TaxAmount, m.TotalAmount, m.PaidAmount, m.PaidDate, m.Notes, m.JournalEntryID, m.PaymentEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceNumber)
	}
	return r.insertItems(ctx, invoice.Items)
}

// UpdateInvoice rewrites every mutable column and replaces the items.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET customer_id = $2, invoice_date = $3, due_date = $4, status = $5,
			subtotal = $6, tax_amount = $7, total_amount = $8, paid_amount = $9, paid_date = $10,
			notes = $11, journal_entry_id = $12, payment_entry_id = $13,
			last_updated_at = $14, last_updated_by = $15, currency_code = $16
		WHERE invoice_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.InvoiceID, m.CustomerID, m.InvoiceDate, m.DueDate, m.Status,
		m.Subtotal, m.TaxAmount, m.TotalAmount, m.PaidAmount, m.PaidDate,
		m.Notes, m.JournalEntryID, m.PaymentEntryID,
		m.LastUpdatedAt, m.LastUpdatedBy, m.CurrencyCode,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice", m.InvoiceID)
	}
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, m.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to replace invoice items", err)
	}
	return r.insertItems(ctx, invoice.Items)
}
