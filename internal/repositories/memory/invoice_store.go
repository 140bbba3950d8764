package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
	if inv.PaidDate != nil {
		t := *inv.PaidDate
		inv.PaidDate = &t
	}
	return inv
}

func (s *Store) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	defer s.read(ctx)()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice", invoiceID)
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

func (s *Store) FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.FindInvoiceByID(ctx, invoiceID)
}

func (s *Store) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	defer s.read(ctx)()

	id, ok := s.invoiceNumbers[invoiceNumber]
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice", invoiceNumber)
	}
	inv := cloneInvoice(s.invoices[id])
	return &inv, nil
}

func sortInvoices(out []domain.Invoice) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceDate.After(out[j].InvoiceDate)
		}
		return out[i].InvoiceNumber > out[j].InvoiceNumber
	})
}

func (s *Store) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	defer s.read(ctx)()

	out := make([]domain.Invoice, 0)
	for _, inv := range s.invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	sortInvoices(out)
	return out, nil
}

func (s *Store) ListOverdueInvoices(ctx context.Context, today time.Time) ([]domain.Invoice, error) {
	defer s.read(ctx)()

	out := make([]domain.Invoice, 0)
	for _, inv := range s.invoices {
		if inv.IsOverdue(today) {
			out = append(out, cloneInvoice(inv))
		}
	}
	sortInvoices(out)
	return out, nil
}

func (s *Store) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	defer s.write(ctx)()

	if _, exists := s.invoiceNumbers[invoice.InvoiceNumber]; exists {
		return apperrors.ErrDuplicate
	}
	if _, ok := s.customers[invoice.CustomerID]; !ok {
		return apperrors.NewNotFoundError("customer", invoice.CustomerID)
	}
	s.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
	s.invoiceNumbers[invoice.InvoiceNumber] = invoice.InvoiceID
	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	defer s.write(ctx)()

	current, ok := s.invoices[invoice.InvoiceID]
	if !ok {
		return apperrors.NewNotFoundError("invoice", invoice.InvoiceID)
	}
	// number and creation audit are immutable
	invoice.InvoiceNumber = current.InvoiceNumber
	invoice.CreatedAt = current.CreatedAt
	invoice.CreatedBy = current.CreatedBy
	s.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
	return nil
}
