package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}

// InvoiceWriterSvc drives the invoice lifecycle and its ledger postings.
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// SendInvoice posts debit receivables / credit revenue for the invoice total.
	SendInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// MarkAsPaid posts debit cash / credit receivables for the invoice total.
	MarkAsPaid(ctx context.Context, invoiceID string, paymentDate time.Time, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels an unpaid invoice and voids its posted entry.
	CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// MarkOverdueInvoices moves sent invoices due before today to OVERDUE.
	MarkOverdueInvoices(ctx context.Context, today time.Time, userID string) (int, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// CustomerSvc manages the customers invoices are issued to.
type CustomerSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
