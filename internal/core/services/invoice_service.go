package services

import (
	"context"
	"errors"
	"fmt"
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
	"github.com/shopspring/decimal"
)

// PostingAccounts names the account codes invoice postings hit.
type PostingAccounts struct {
	Receivable string
	Revenue    string
	Cash       string
}

// invoiceService drives invoices through their lifecycle and keeps the ledger in step.
type invoiceService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerReader
	accountRepo  portsrepo.AccountReader
	currencyRepo portsrepo.CurrencyReader
	journal      portssvc.JournalSvcFacade
	sequence     portssvc.SequenceSvc
	accounts     PostingAccounts
}

// InvoiceOption configures the invoice service.
type InvoiceOption func(*invoiceService)

// WithInvoiceClock overrides the audit clock.
func WithInvoiceClock(now func() time.Time) InvoiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// WithInvoiceCurrencies checks invoice currency codes against the registry.
func WithInvoiceCurrencies(repo portsrepo.CurrencyReader) InvoiceOption {
	return func(s *invoiceService) {
		s.currencyRepo = repo
	}
}

// NewInvoiceService creates the invoice-to-ledger bridge.
func NewInvoiceService(
	txManager portsrepo.TransactionManager,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	accountRepo portsrepo.AccountReader,
	journal portssvc.JournalSvcFacade,
	sequence portssvc.SequenceSvc,
	accounts PostingAccounts,
	options ...InvoiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		txManager:    txOrDirect(txManager),
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		journal:      journal,
		sequence:     sequence,
		accounts:     accounts,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

type invoiceFields struct {
	CustomerID   string
	CurrencyCode string
	InvoiceDate  time.Time
	DueDate      time.Time
	Items        []dto.InvoiceItemRequest
	TaxAmount    decimal.Decimal
	Notes        string
}

func checkInvoiceFields(f invoiceFields) error {
	if domain.DateOnly(f.DueDate).Before(domain.DateOnly(f.InvoiceDate)) {
		return apperrors.NewValidationError("dueDate", "must not be before invoiceDate")
	}
	if f.TaxAmount.IsNegative() {
		return apperrors.NewValidationError("taxAmount", "must not be negative")
	}
	total := f.TaxAmount
	for i, it := range f.Items {
		if !it.Quantity.IsPositive() {
			return apperrors.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if it.UnitPrice.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("items[%d].unitPrice", i), "must not be negative")
		}
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	// a zero invoice could never be sent: the receivable entry would have no amount
	if !total.IsPositive() {
		return apperrors.NewValidationError("items", "invoice total must be greater than zero")
	}
	return nil
}

// apply copies request fields onto inv and recomputes its amounts.
func (f invoiceFields) apply(inv *domain.Invoice) {
	inv.CustomerID = f.CustomerID
	inv.CurrencyCode = f.CurrencyCode
	inv.InvoiceDate = domain.DateOnly(f.InvoiceDate)
	inv.DueDate = domain.DateOnly(f.DueDate)
	inv.TaxAmount = f.TaxAmount
	inv.Notes = strings.TrimSpace(f.Notes)
	inv.Items = make([]domain.InvoiceItem, len(f.Items))
	for i, it := range f.Items {
		inv.Items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   inv.InvoiceID,
			LineNumber:  i + 1,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	inv.RecalculateTotals()
}

func (s *invoiceService) findCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewDomainError("Customer not found: %s", customerID)
		}
		return nil, err
	}
	return customer, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	fields := invoiceFields(req)
	if err := checkInvoiceFields(fields); err != nil {
		return nil, err
	}

	inv := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		Status:      domain.InvoiceDraft,
		PaidAmount:  decimal.Zero,
		AuditFields: domain.NewAuditFields(s.Now(), userID),
	}
	fields.apply(&inv)

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.findCustomer(ctx, inv.CustomerID); err != nil {
			return err
		}
		if err := checkCurrencyCode(ctx, s.currencyRepo, inv.CurrencyCode); err != nil {
			return err
		}
		number, err := s.sequence.Next(ctx, domain.InvoicePrefix, domain.PeriodOf(inv.InvoiceDate))
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		return s.invoiceRepo.SaveInvoice(ctx, inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("total", inv.TotalAmount.String()))
	return &inv, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	fields := invoiceFields(req)
	if err := checkInvoiceFields(fields); err != nil {
		return nil, err
	}

	var inv *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return apperrors.NewDomainError("Only draft invoices can be modified")
		}
		if _, err := s.findCustomer(ctx, fields.CustomerID); err != nil {
			return err
		}
		if err := checkCurrencyCode(ctx, s.currencyRepo, fields.CurrencyCode); err != nil {
			return err
		}
		fields.apply(inv)
		inv.Touch(s.Now(), userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return inv, nil
}

// postingAccount resolves a configured account code to its id.
func (s *invoiceService) postingAccount(ctx context.Context, code string) (string, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewDomainError("Account not found: %s", code)
		}
		return "", err
	}
	return account.AccountID, nil
}

// postTransfer creates and posts a two-line entry debiting one account code and crediting another.
func (s *invoiceService) postTransfer(ctx context.Context, date time.Time, description, reference, debitCode, creditCode string, amount decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	debitID, err := s.postingAccount(ctx, debitCode)
	if err != nil {
		return nil, err
	}
	creditID, err := s.postingAccount(ctx, creditCode)
	if err != nil {
		return nil, err
	}
	return s.journal.CreateAndPostEntry(ctx, dto.CreateJournalEntryRequest{
		EntryDate:   date,
		Description: description,
		Reference:   reference,
		Lines: []dto.JournalLineRequest{
			{AccountID: debitID, DebitAmount: amount, CreditAmount: decimal.Zero},
			{AccountID: creditID, DebitAmount: decimal.Zero, CreditAmount: amount},
		},
	}, userID)
}

// SendInvoice posts the receivable against revenue and marks the invoice sent, atomically.
func (s *invoiceService) SendInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return apperrors.NewDomainError("Only draft invoices can be sent")
		}
		if !inv.TotalAmount.IsPositive() {
			return apperrors.NewDomainError("Invoice total must be greater than zero: %s", inv.InvoiceNumber)
		}
		customer, err := s.findCustomer(ctx, inv.CustomerID)
		if err != nil {
			return err
		}

		entry, err := s.postTransfer(ctx, inv.InvoiceDate,
			fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, customer.Name),
			inv.InvoiceNumber,
			s.accounts.Receivable, s.accounts.Revenue,
			inv.TotalAmount, userID)
		if err != nil {
			return err
		}

		inv.JournalEntryID = entry.EntryID
		inv.Status = domain.InvoiceSent
		inv.Touch(s.Now(), userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to send invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice sent",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("journal_entry_id", inv.JournalEntryID))
	return inv, nil
}

// MarkAsPaid posts the cash receipt against the receivable for the full invoice total.
func (s *invoiceService) MarkAsPaid(ctx context.Context, invoiceID string, paymentDate time.Time, userID string) (*domain.Invoice, error) {
	if paymentDate.IsZero() {
		return nil, apperrors.NewValidationError("paymentDate", "is required")
	}

	var inv *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceSent && inv.Status != domain.InvoiceOverdue {
			return apperrors.NewDomainError("Only sent or overdue invoices can be marked as paid")
		}

		paid := domain.DateOnly(paymentDate)
		entry, err := s.postTransfer(ctx, paid,
			fmt.Sprintf("Payment for invoice %s", inv.InvoiceNumber),
			fmt.Sprintf("%s-%s", domain.PaymentReferencePrefix, inv.InvoiceNumber),
			s.accounts.Cash, s.accounts.Receivable,
			inv.TotalAmount, userID)
		if err != nil {
			return err
		}

		inv.PaymentEntryID = entry.EntryID
		inv.PaidAmount = inv.TotalAmount
		inv.PaidDate = &paid
		inv.Status = domain.InvoicePaid
		inv.Touch(s.Now(), userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark invoice as paid", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice paid",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("payment_entry_id", inv.PaymentEntryID))
	return inv, nil
}

// CancelInvoice cancels an unpaid invoice and voids its posted receivable entry.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		switch inv.Status {
		case domain.InvoicePaid:
			return apperrors.NewDomainError("Paid invoices cannot be cancelled")
		case domain.InvoiceCancelled:
			return apperrors.NewDomainError("Invoice is already cancelled")
		}

		if inv.JournalEntryID != "" {
			entry, err := s.journal.GetEntry(ctx, inv.JournalEntryID)
			if err != nil {
				return err
			}
			if entry.Status == domain.EntryPosted {
				if _, err := s.journal.VoidEntry(ctx, entry.EntryID, userID); err != nil {
					return err
				}
			}
		}

		inv.Status = domain.InvoiceCancelled
		inv.Touch(s.Now(), userID)
		return s.invoiceRepo.UpdateInvoice(ctx, *inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice cancelled", slog.String("invoice_id", invoiceID))
	return inv, nil
}

// MarkOverdueInvoices reclassifies sent invoices past their due date and returns how many changed.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, today time.Time, userID string) (int, error) {
	updated := 0
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		overdue, err := s.invoiceRepo.ListOverdueInvoices(ctx, today)
		if err != nil {
			return err
		}
		now := s.Now()
		for _, candidate := range overdue {
			inv, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, candidate.InvoiceID)
			if err != nil {
				return err
			}
			// paid or cancelled since it was listed
			if inv.Status != domain.InvoiceSent {
				continue
			}
			inv.Status = domain.InvoiceOverdue
			inv.Touch(now, userID)
			if err := s.invoiceRepo.UpdateInvoice(ctx, *inv); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue invoices")
		return 0, err
	}
	if updated > 0 {
		s.LogInfo(ctx, "Invoices marked overdue", slog.Int("count", updated))
	}
	return updated, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListInvoices(ctx, domain.InvoiceFilter{Status: params.Status, CustomerID: params.CustomerID})
}
