package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"golang.org/x/sync/errgroup"
)

// lockRecordingStore counts locking reads and whether they ran inside a transaction.
type lockRecordingStore struct {
	*memory.Store

	mu              sync.Mutex
	invoiceLocks    int
	entryLocks      int
	lockedOutsideTx bool
}

type recordingTxKey struct{}

func (r *lockRecordingStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.Store.WithinTx(ctx, func(ctx context.Context) error {
		return fn(context.WithValue(ctx, recordingTxKey{}, true))
	})
}

func (r *lockRecordingStore) record(ctx context.Context, counter *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*counter++
	if inTx, _ := ctx.Value(recordingTxKey{}).(bool); !inTx {
		r.lockedOutsideTx = true
	}
}

func (r *lockRecordingStore) FindInvoiceForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	r.record(ctx, &r.invoiceLocks)
	return r.Store.FindInvoiceForUpdate(ctx, invoiceID)
}

func (r *lockRecordingStore) FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	r.record(ctx, &r.entryLocks)
	return r.Store.FindEntryForUpdate(ctx, entryID)
}

func (s *LedgerScenarioSuite) TestTransitionsReadThroughRowLocks() {
	rec := &lockRecordingStore{Store: memory.New()}
	repos := memory.NewRepositoryProvider(rec.Store)
	repos.TxManager = rec
	repos.InvoiceRepo = rec
	repos.JournalRepo = rec
	s.svc = services.NewServiceContainer(s.cfg, repos)
	for _, req := range defaultChart {
		a, err := s.svc.Account.EnsureAccount(s.ctx, req, testUser)
		s.Require().NoError(err)
		s.accounts[req.Code] = a
	}

	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal(1, rec.invoiceLocks)
	s.Equal(1, rec.entryLocks, "posting the receivable entry")

	_, err = s.svc.Invoice.MarkAsPaid(s.ctx, inv.InvoiceID, day(2026, 2, 20), testUser)
	s.Require().NoError(err)
	s.Equal(2, rec.invoiceLocks)
	s.Equal(2, rec.entryLocks)

	draft, err := s.svc.Journal.CreateEntry(s.ctx, s.transferReq(day(2026, 2, 21), "1000", "3000", "5"), testUser)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Journal.DeleteEntry(s.ctx, draft.EntryID, testUser))
	s.Equal(3, rec.entryLocks)

	s.False(rec.lockedOutsideTx)
}

func (s *LedgerScenarioSuite) TestConcurrentSendPostsOnce() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	const callers = 10
	var (
		g        errgroup.Group
		mu       sync.Mutex
		sent     int
		rejected int
	)
	for range callers {
		g.Go(func() error {
			_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				sent++
			case err.Error() == "Only draft invoices can be sent":
				rejected++
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(1, sent)
	s.Equal(callers-1, rejected)

	s.equalAmount("1400", s.balance("1200"))
	s.equalAmount("1300", s.balance("4000"))
	page, err := s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{Status: domain.EntryPosted})
	s.Require().NoError(err)
	s.Len(page.Entries, 1)
}

func (s *LedgerScenarioSuite) TestConcurrentPaymentPostsOnce() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))
	_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)

	var g errgroup.Group
	var mu sync.Mutex
	paid := 0
	for range 8 {
		g.Go(func() error {
			_, err := s.svc.Invoice.MarkAsPaid(s.ctx, inv.InvoiceID, day(2026, 2, 20), testUser)
			if err != nil && !errors.Is(err, apperrors.ErrDomain) {
				return err
			}
			if err == nil {
				mu.Lock()
				paid++
				mu.Unlock()
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(1, paid)
	s.equalAmount("1400", s.balance("1000"))
	s.equalAmount("0", s.balance("1200"))
}

func (s *LedgerScenarioSuite) TestZeroTotalInvoiceRejected() {
	c := s.customer()
	req := dto.CreateInvoiceRequest{
		CustomerID:  c.CustomerID,
		InvoiceDate: day(2026, 2, 3),
		DueDate:     day(2026, 3, 5),
		Items:       []dto.InvoiceItemRequest{{Description: "Free sample", Quantity: amount("1"), UnitPrice: amount("0")}},
	}
	_, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorContains(err, "invoice total must be greater than zero")

	// tax alone makes the total positive
	req.TaxAmount = amount("5")
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.Require().NoError(err)
	s.equalAmount("5", inv.TotalAmount)

	update := dto.UpdateInvoiceRequest(req)
	update.TaxAmount = amount("0")
	_, err = s.svc.Invoice.UpdateInvoice(s.ctx, inv.InvoiceID, update, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}
