package services_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const testUser = "user-1"

var defaultChart = []dto.CreateAccountRequest{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset},
	{Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset},
	{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
	{Code: "3000", Name: "Owner's Equity", AccountType: domain.Equity},
	{Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue},
	{Code: "5000", Name: "Operating Expenses", AccountType: domain.Expense},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// LedgerScenarioSuite drives the full service graph over the in-memory store.
type LedgerScenarioSuite struct {
	suite.Suite
	ctx      context.Context
	cfg      *config.Config
	store    *memory.Store
	svc      *portssvc.ServiceContainer
	accounts map[string]*domain.Account // by code
}

func TestLedgerScenarioSuite(t *testing.T) {
	suite.Run(t, new(LedgerScenarioSuite))
}

func (s *LedgerScenarioSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = &config.Config{Ledger: config.DefaultLedgerConfig()}
	s.build()
}

// build wires a fresh store and seeds the chart of accounts.
func (s *LedgerScenarioSuite) build() {
	s.store = memory.New()
	s.svc = services.NewServiceContainer(s.cfg, memory.NewRepositoryProvider(s.store))
	s.accounts = make(map[string]*domain.Account)
	for _, req := range defaultChart {
		a, err := s.svc.Account.EnsureAccount(s.ctx, req, testUser)
		s.Require().NoError(err)
		s.accounts[req.Code] = a
	}
}

func (s *LedgerScenarioSuite) id(code string) string {
	return s.accounts[code].AccountID
}

func (s *LedgerScenarioSuite) equalAmount(expected string, got decimal.Decimal, msgAndArgs ...any) {
	s.Truef(amount(expected).Equal(got), "expected %s, got %s %v", expected, got.String(), msgAndArgs)
}

func (s *LedgerScenarioSuite) transferReq(date time.Time, debitCode, creditCode, amt string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   date,
		Description: fmt.Sprintf("%s to %s", creditCode, debitCode),
		Lines: []dto.JournalLineRequest{
			{AccountID: s.id(debitCode), DebitAmount: amount(amt), CreditAmount: decimal.Zero},
			{AccountID: s.id(creditCode), DebitAmount: decimal.Zero, CreditAmount: amount(amt)},
		},
	}
}

func (s *LedgerScenarioSuite) post(date time.Time, debitCode, creditCode, amt string) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateAndPostEntry(s.ctx, s.transferReq(date, debitCode, creditCode, amt), testUser)
	s.Require().NoError(err)
	return entry
}

func (s *LedgerScenarioSuite) balance(code string) decimal.Decimal {
	bal, err := s.svc.Balance.GetBalance(s.ctx, s.id(code))
	s.Require().NoError(err)
	return bal
}

func (s *LedgerScenarioSuite) customer() *domain.Customer {
	c, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Code: "ACME", Name: "Acme Corp"}, testUser)
	s.Require().NoError(err)
	return c
}

func (s *LedgerScenarioSuite) invoice(customerID string, date, due time.Time) *domain.Invoice {
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, dto.CreateInvoiceRequest{
		CustomerID:  customerID,
		InvoiceDate: date,
		DueDate:     due,
		Items: []dto.InvoiceItemRequest{
			{Description: "Consulting", Quantity: amount("10"), UnitPrice: amount("100")},
			{Description: "Setup", Quantity: amount("1"), UnitPrice: amount("300")},
		},
		TaxAmount: amount("100"),
	}, testUser)
	s.Require().NoError(err)
	return inv
}

func (s *LedgerScenarioSuite) TestPostedEntryMovesBothSides() {
	s.post(day(2026, 1, 10), "1000", "3000", "1000")

	s.equalAmount("1000", s.balance("1000"))
	s.equalAmount("1000", s.balance("3000"))
}

func (s *LedgerScenarioSuite) TestScenarioA_CashSale() {
	entry := s.post(day(2026, 1, 10), "1000", "4000", "1500")

	s.Equal(domain.EntryPosted, entry.Status)
	s.Equal("JE-202601-0001", entry.EntryNumber)
	s.NotNil(entry.PostedAt)
	s.True(entry.IsBalanced())
	s.equalAmount("1500", s.balance("1000"))
	s.equalAmount("1500", s.balance("4000"))

	tb, err := s.svc.Reporting.GetTrialBalance(s.ctx, day(2026, 1, 31))
	s.Require().NoError(err)
	s.True(tb.IsBalanced)
	s.Len(tb.Rows, 2)
	s.equalAmount("1500", tb.TotalDebit)
	s.equalAmount("1500", tb.TotalCredit)

	pl, err := s.svc.Reporting.GetProfitAndLoss(s.ctx, day(2026, 1, 1), day(2026, 1, 31))
	s.Require().NoError(err)
	s.equalAmount("1500", pl.TotalRevenue)
	s.equalAmount("1500", pl.NetIncome)
}

func (s *LedgerScenarioSuite) TestScenarioB_InvoiceLifecycle() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	s.Equal("INV-202602-0001", inv.InvoiceNumber)
	s.Equal(domain.InvoiceDraft, inv.Status)
	s.equalAmount("1300", inv.Subtotal)
	s.equalAmount("1400", inv.TotalAmount)
	s.equalAmount("1000", inv.Items[0].Amount)

	sent, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceSent, sent.Status)
	s.Require().NotEmpty(sent.JournalEntryID)
	s.equalAmount("1400", s.balance("1200"))
	s.equalAmount("1400", s.balance("4000"))

	entry, err := s.svc.Journal.GetEntry(s.ctx, sent.JournalEntryID)
	s.Require().NoError(err)
	s.Equal("Invoice INV-202602-0001 - Acme Corp", entry.Description)
	s.Equal("INV-202602-0001", entry.Reference)
	s.Equal(domain.EntryPosted, entry.Status)

	paid, err := s.svc.Invoice.MarkAsPaid(s.ctx, inv.InvoiceID, day(2026, 2, 20), testUser)
	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, paid.Status)
	s.equalAmount("1400", paid.PaidAmount)
	s.Require().NotNil(paid.PaidDate)
	s.Equal(day(2026, 2, 20), *paid.PaidDate)
	s.equalAmount("1400", s.balance("1000"))
	s.equalAmount("0", s.balance("1200"))

	payment, err := s.svc.Journal.GetEntry(s.ctx, paid.PaymentEntryID)
	s.Require().NoError(err)
	s.Equal("PMT-INV-202602-0001", payment.Reference)
	s.Equal(day(2026, 2, 20), payment.EntryDate)

	stored, err := s.svc.Invoice.GetInvoice(s.ctx, inv.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, stored.Status)
	s.Equal(paid.PaymentEntryID, stored.PaymentEntryID)
}

func (s *LedgerScenarioSuite) TestScenarioC_AsOfBalances() {
	yesterday, today := day(2026, 3, 9), day(2026, 3, 10)
	s.post(yesterday, "1000", "3000", "1000")
	s.post(today, "1000", "3000", "500")

	asOfYesterday, err := s.svc.Balance.GetBalanceAsOfDate(s.ctx, s.id("1000"), yesterday)
	s.Require().NoError(err)
	s.equalAmount("1000", asOfYesterday)

	asOfToday, err := s.svc.Balance.GetBalanceAsOfDate(s.ctx, s.id("1000"), today)
	s.Require().NoError(err)
	s.equalAmount("1500", asOfToday)

	rangeToday, err := s.svc.Balance.GetBalanceForRange(s.ctx, s.id("1000"), today, today)
	s.Require().NoError(err)
	s.equalAmount("500", rangeToday)

	_, err = s.svc.Balance.GetBalanceForRange(s.ctx, s.id("1000"), today, yesterday)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioSuite) TestDraftEntriesDoNotAffectBalances() {
	draft, err := s.svc.Journal.CreateEntry(s.ctx, s.transferReq(day(2026, 1, 5), "1000", "3000", "250"), testUser)
	s.Require().NoError(err)
	s.Equal(domain.EntryDraft, draft.Status)
	s.equalAmount("0", s.balance("1000"))

	posted, err := s.svc.Journal.PostEntry(s.ctx, draft.EntryID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.EntryPosted, posted.Status)
	s.equalAmount("250", s.balance("1000"))

	_, err = s.svc.Journal.VoidEntry(s.ctx, draft.EntryID, testUser)
	s.Require().NoError(err)
	s.equalAmount("0", s.balance("1000"))
}

func (s *LedgerScenarioSuite) TestEntryTransitionMessages() {
	draft, err := s.svc.Journal.CreateEntry(s.ctx, s.transferReq(day(2026, 1, 5), "1000", "3000", "10"), testUser)
	s.Require().NoError(err)

	_, err = s.svc.Journal.VoidEntry(s.ctx, draft.EntryID, testUser)
	s.EqualError(err, "Only posted entries can be voided")

	posted := s.post(day(2026, 1, 6), "1000", "3000", "20")

	_, err = s.svc.Journal.PostEntry(s.ctx, posted.EntryID, testUser)
	s.EqualError(err, "Only draft entries can be posted")

	_, err = s.svc.Journal.UpdateEntry(s.ctx, posted.EntryID, dto.UpdateJournalEntryRequest(s.transferReq(day(2026, 1, 6), "1000", "3000", "30")), testUser)
	s.EqualError(err, "Only draft entries can be modified")

	err = s.svc.Journal.DeleteEntry(s.ctx, posted.EntryID, testUser)
	s.EqualError(err, "Only draft entries can be deleted")

	_, err = s.svc.Journal.VoidEntry(s.ctx, posted.EntryID, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Journal.VoidEntry(s.ctx, posted.EntryID, testUser)
	s.EqualError(err, "Entry is already void")
	s.ErrorIs(err, apperrors.ErrDomain)

	s.Require().NoError(s.svc.Journal.DeleteEntry(s.ctx, draft.EntryID, testUser))
	_, err = s.svc.Journal.GetEntry(s.ctx, draft.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerScenarioSuite) TestEntryValidation() {
	req := s.transferReq(day(2026, 1, 5), "1000", "3000", "100")
	req.Lines[1].CreditAmount = amount("90")
	_, err := s.svc.Journal.CreateEntry(s.ctx, req, testUser)
	s.EqualError(err, "Journal entry is not balanced: debits 100, credits 90")

	req = s.transferReq(day(2026, 1, 5), "1000", "3000", "100")
	req.Lines = req.Lines[:1]
	_, err = s.svc.Journal.CreateEntry(s.ctx, req, testUser)
	s.EqualError(err, "Journal entry must have at least two lines")

	req = s.transferReq(day(2026, 1, 5), "1000", "3000", "100")
	req.Lines[0].AccountID = "missing"
	_, err = s.svc.Journal.CreateEntry(s.ctx, req, testUser)
	s.EqualError(err, "Account not found: missing")

	req = s.transferReq(day(2026, 1, 5), "1000", "3000", "100")
	req.Description = "   "
	_, err = s.svc.Journal.CreateEntry(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	// rejected entries never consume a number
	entry := s.post(day(2026, 1, 5), "1000", "3000", "1")
	s.Equal("JE-202601-0001", entry.EntryNumber)
}

func (s *LedgerScenarioSuite) TestInactiveAccountRejected() {
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.id("2000"), testUser))

	_, err := s.svc.Journal.CreateEntry(s.ctx, s.transferReq(day(2026, 1, 5), "1000", "2000", "10"), testUser)
	s.EqualError(err, "Cannot use inactive account: 2000")

	active, err := s.svc.Account.ListActiveAccounts(s.ctx, domain.Liability)
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *LedgerScenarioSuite) TestDeactivateWithBalanceRejected() {
	s.post(day(2026, 1, 10), "1000", "3000", "1000")

	err := s.svc.Account.DeactivateAccount(s.ctx, s.id("1000"), testUser)
	s.EqualError(err, "Cannot deactivate account with non-zero balance")

	account, err := s.svc.Account.GetAccountByID(s.ctx, s.id("1000"))
	s.Require().NoError(err)
	s.True(account.IsActive)
}

func (s *LedgerScenarioSuite) TestInvoiceTransitionMessages() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	_, err := s.svc.Invoice.MarkAsPaid(s.ctx, inv.InvoiceID, day(2026, 2, 4), testUser)
	s.EqualError(err, "Only sent or overdue invoices can be marked as paid")

	_, err = s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.EqualError(err, "Only draft invoices can be sent")

	_, err = s.svc.Invoice.UpdateInvoice(s.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{
		CustomerID:  c.CustomerID,
		InvoiceDate: day(2026, 2, 3),
		DueDate:     day(2026, 3, 5),
		Items:       []dto.InvoiceItemRequest{{Description: "x", Quantity: amount("1"), UnitPrice: amount("1")}},
	}, testUser)
	s.EqualError(err, "Only draft invoices can be modified")

	_, err = s.svc.Invoice.MarkAsPaid(s.ctx, inv.InvoiceID, day(2026, 2, 10), testUser)
	s.Require().NoError(err)
	_, err = s.svc.Invoice.CancelInvoice(s.ctx, inv.InvoiceID, testUser)
	s.EqualError(err, "Paid invoices cannot be cancelled")
}

func (s *LedgerScenarioSuite) TestCancelSentInvoiceVoidsEntry() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))
	sent, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)

	cancelled, err := s.svc.Invoice.CancelInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceCancelled, cancelled.Status)
	s.equalAmount("0", s.balance("1200"))
	s.equalAmount("0", s.balance("4000"))

	entry, err := s.svc.Journal.GetEntry(s.ctx, sent.JournalEntryID)
	s.Require().NoError(err)
	s.Equal(domain.EntryVoid, entry.Status)

	_, err = s.svc.Invoice.CancelInvoice(s.ctx, inv.InvoiceID, testUser)
	s.EqualError(err, "Invoice is already cancelled")
}

func (s *LedgerScenarioSuite) TestCancelDraftInvoice() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	cancelled, err := s.svc.Invoice.CancelInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceCancelled, cancelled.Status)
	s.Empty(cancelled.JournalEntryID)
}

func (s *LedgerScenarioSuite) TestInvoiceValidation() {
	c := s.customer()
	base := dto.CreateInvoiceRequest{
		CustomerID:  c.CustomerID,
		InvoiceDate: day(2026, 2, 3),
		DueDate:     day(2026, 3, 5),
		Items:       []dto.InvoiceItemRequest{{Description: "x", Quantity: amount("1"), UnitPrice: amount("10")}},
	}

	req := base
	req.DueDate = day(2026, 2, 1)
	_, err := s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	req = base
	req.Items = []dto.InvoiceItemRequest{{Description: "x", Quantity: amount("0"), UnitPrice: amount("10")}}
	_, err = s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	req = base
	req.TaxAmount = amount("-1")
	_, err = s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	req = base
	req.Items = nil
	_, err = s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	req = base
	req.CustomerID = "nobody"
	_, err = s.svc.Invoice.CreateInvoice(s.ctx, req, testUser)
	s.EqualError(err, "Customer not found: nobody")
}

func (s *LedgerScenarioSuite) TestSendRollsBackWhenPostingFails() {
	s.cfg.Ledger.RevenueAccountCode = "4999"
	s.build()

	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 5))

	_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.EqualError(err, "Account not found: 4999")

	stored, err := s.svc.Invoice.GetInvoice(s.ctx, inv.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceDraft, stored.Status)
	s.Empty(stored.JournalEntryID)

	page, err := s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Empty(page.Entries)
}

func (s *LedgerScenarioSuite) TestMarkOverdueInvoices() {
	c := s.customer()
	late := s.invoice(c.CustomerID, day(2026, 1, 3), day(2026, 1, 31))
	onTime := s.invoice(c.CustomerID, day(2026, 2, 3), day(2026, 3, 31))
	draft := s.invoice(c.CustomerID, day(2026, 1, 3), day(2026, 1, 10))
	for _, inv := range []*domain.Invoice{late, onTime} {
		_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
		s.Require().NoError(err)
	}

	dash, err := s.svc.Reporting.GetDashboard(s.ctx, day(2026, 2, 15))
	s.Require().NoError(err)
	s.Equal(1, dash.OverdueInvoices)
	s.equalAmount("1400", dash.OverdueAmount)

	n, err := s.svc.Invoice.MarkOverdueInvoices(s.ctx, day(2026, 2, 15), testUser)
	s.Require().NoError(err)
	s.Equal(1, n)

	got, err := s.svc.Invoice.GetInvoice(s.ctx, late.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceOverdue, got.Status)
	got, err = s.svc.Invoice.GetInvoice(s.ctx, draft.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.InvoiceDraft, got.Status)

	overdue, err := s.svc.Invoice.ListInvoices(s.ctx, dto.ListInvoicesParams{Status: domain.InvoiceOverdue})
	s.Require().NoError(err)
	s.Len(overdue, 1)

	// overdue invoices can still be paid
	_, err = s.svc.Invoice.MarkAsPaid(s.ctx, late.InvoiceID, day(2026, 2, 16), testUser)
	s.NoError(err)

	n, err = s.svc.Invoice.MarkOverdueInvoices(s.ctx, day(2026, 2, 15), testUser)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *LedgerScenarioSuite) TestBalanceSheetAndRetainedEarnings() {
	s.post(day(2025, 6, 1), "1000", "3000", "5000")
	s.post(day(2025, 9, 1), "1000", "4000", "800")  // prior year income
	s.post(day(2026, 2, 1), "1000", "4000", "1200") // current year income
	s.post(day(2026, 2, 2), "5000", "1000", "200")

	bs, err := s.svc.Reporting.GetBalanceSheet(s.ctx, day(2026, 2, 28))
	s.Require().NoError(err)
	s.equalAmount("6800", bs.TotalAssets)
	s.equalAmount("5000", bs.TotalEquity)
	s.equalAmount("800", bs.PriorPeriodEarnings)
	s.equalAmount("1000", bs.CurrentPeriodEarnings)
	s.equalAmount("1800", bs.RetainedEarnings)
	s.True(bs.IsBalanced)

	// a fiscal year starting in July moves the split
	_, err = s.svc.FiscalYear.CreateFiscalYear(s.ctx, dto.CreateFiscalYearRequest{
		Name: "FY2026", StartDate: day(2025, 7, 1), EndDate: day(2026, 6, 30),
	}, testUser)
	s.Require().NoError(err)
	bs, err = s.svc.Reporting.GetBalanceSheet(s.ctx, day(2026, 2, 28))
	s.Require().NoError(err)
	s.equalAmount("0", bs.PriorPeriodEarnings)
	s.equalAmount("1800", bs.CurrentPeriodEarnings)

	dash, err := s.svc.Reporting.GetDashboard(s.ctx, day(2026, 2, 28))
	s.Require().NoError(err)
	s.equalAmount("6800", dash.TotalAssets)
	s.equalAmount("6800", dash.TotalEquity)
	s.equalAmount("1200", dash.MonthRevenue)
	s.equalAmount("200", dash.MonthExpenses)
	s.equalAmount("1000", dash.MonthNetIncome)
	s.equalAmount("6800", dash.CashBalance)
}

func (s *LedgerScenarioSuite) TestGeneralLedger() {
	s.post(day(2026, 1, 2), "1000", "3000", "1000")
	s.post(day(2026, 1, 10), "1000", "4000", "300")
	s.post(day(2026, 1, 12), "5000", "1000", "100")
	s.post(day(2026, 2, 1), "1000", "4000", "50")

	gl, err := s.svc.Reporting.GetGeneralLedger(s.ctx, s.id("1000"), day(2026, 1, 5), day(2026, 1, 31))
	s.Require().NoError(err)
	s.equalAmount("1000", gl.OpeningBalance)
	s.Require().Len(gl.Lines, 2)
	s.equalAmount("1300", gl.Lines[0].RunningBalance)
	s.equalAmount("1200", gl.Lines[1].RunningBalance)
	s.equalAmount("1200", gl.ClosingBalance)
	s.equalAmount("300", gl.TotalDebit)
	s.equalAmount("100", gl.TotalCredit)
	s.Equal("4000 to 1000", gl.Lines[0].Description)

	_, err = s.svc.Reporting.GetGeneralLedger(s.ctx, s.id("1000"), day(2026, 2, 1), day(2026, 1, 1))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioSuite) TestTrialBalanceAlwaysBalanced() {
	c := s.customer()
	inv := s.invoice(c.CustomerID, day(2026, 1, 3), day(2026, 1, 31))
	_, err := s.svc.Invoice.SendInvoice(s.ctx, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.post(day(2026, 1, 4), "1000", "3000", "2500.75")
	s.post(day(2026, 1, 5), "5000", "2000", "99.99")
	voided := s.post(day(2026, 1, 6), "1000", "4000", "10")
	_, err = s.svc.Journal.VoidEntry(s.ctx, voided.EntryID, testUser)
	s.Require().NoError(err)

	for _, asOf := range []time.Time{day(2026, 1, 3), day(2026, 1, 5), day(2026, 12, 31)} {
		tb, err := s.svc.Reporting.GetTrialBalance(s.ctx, asOf)
		s.Require().NoError(err)
		s.True(tb.IsBalanced, "as of %s", asOf.Format(time.DateOnly))
		s.True(tb.TotalDebit.Equal(tb.TotalCredit))
	}
}

func (s *LedgerScenarioSuite) TestFiscalYearGuard() {
	s.cfg.Ledger.EnforceFiscalYear = true
	s.build()

	_, err := s.svc.Journal.CreateAndPostEntry(s.ctx, s.transferReq(day(2026, 1, 10), "1000", "3000", "10"), testUser)
	s.EqualError(err, "No open fiscal year for date 2026-01-10")

	// the failed post left no draft behind
	page, err := s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Empty(page.Entries)

	fy, err := s.svc.FiscalYear.CreateFiscalYear(s.ctx, dto.CreateFiscalYearRequest{
		Name: "FY2026", StartDate: day(2026, 1, 1), EndDate: day(2026, 12, 31),
	}, testUser)
	s.Require().NoError(err)
	s.post(day(2026, 1, 10), "1000", "3000", "10")

	_, err = s.svc.FiscalYear.CloseFiscalYear(s.ctx, fy.FiscalYearID, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Journal.CreateAndPostEntry(s.ctx, s.transferReq(day(2026, 1, 11), "1000", "3000", "10"), testUser)
	s.EqualError(err, "Fiscal year FY2026 is closed")
}

func (s *LedgerScenarioSuite) TestFiscalYearCalendar() {
	fy, err := s.svc.FiscalYear.CreateFiscalYear(s.ctx, dto.CreateFiscalYearRequest{
		Name: "FY2026", StartDate: day(2026, 1, 1), EndDate: day(2026, 12, 31),
	}, testUser)
	s.Require().NoError(err)

	_, err = s.svc.FiscalYear.CreateFiscalYear(s.ctx, dto.CreateFiscalYearRequest{
		Name: "Overlap", StartDate: day(2026, 12, 31), EndDate: day(2027, 12, 30),
	}, testUser)
	s.EqualError(err, "Fiscal year overlaps with FY2026")

	_, err = s.svc.FiscalYear.CreateFiscalYear(s.ctx, dto.CreateFiscalYearRequest{
		Name: "Backwards", StartDate: day(2028, 2, 1), EndDate: day(2028, 1, 1),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	found, err := s.svc.FiscalYear.FindFiscalYearForDate(s.ctx, day(2026, 12, 31))
	s.Require().NoError(err)
	s.Equal(fy.FiscalYearID, found.FiscalYearID)

	closed, err := s.svc.FiscalYear.CloseFiscalYear(s.ctx, fy.FiscalYearID, testUser)
	s.Require().NoError(err)
	s.True(closed.IsClosed)
	s.NotNil(closed.ClosedAt)

	_, err = s.svc.FiscalYear.CloseFiscalYear(s.ctx, fy.FiscalYearID, testUser)
	s.EqualError(err, "Fiscal year FY2026 is already closed")
}

func (s *LedgerScenarioSuite) TestCustomerCodeUnique() {
	s.customer()
	_, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Code: "ACME", Name: "Other"}, testUser)
	s.EqualError(err, "Customer code already exists: ACME")

	list, err := s.svc.Customer.ListCustomers(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *LedgerScenarioSuite) TestConcurrentSequenceNumbersAreGapFree() {
	const n = 50
	numbers := make([]string, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			num, err := s.svc.Sequence.Next(s.ctx, "JE", "202601")
			numbers[i] = num
			return err
		})
	}
	s.Require().NoError(g.Wait())

	sort.Strings(numbers)
	for i, num := range numbers {
		s.Equal(fmt.Sprintf("JE-202601-%04d", i+1), num)
	}

	// a new period starts again at 1
	num, err := s.svc.Sequence.Next(s.ctx, "JE", "202602")
	s.Require().NoError(err)
	s.Equal("JE-202602-0001", num)
}

func (s *LedgerScenarioSuite) TestConcurrentPostingsStayBalanced() {
	var g errgroup.Group
	for i := range 20 {
		g.Go(func() error {
			_, err := s.svc.Journal.CreateAndPostEntry(s.ctx,
				s.transferReq(day(2026, 1, 1+i%28), "1000", "4000", "10"), testUser)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.equalAmount("200", s.balance("1000"))
	tb, err := s.svc.Reporting.GetTrialBalance(s.ctx, day(2026, 1, 31))
	s.Require().NoError(err)
	s.True(tb.IsBalanced)
}

func (s *LedgerScenarioSuite) TestReadsAreRepeatable() {
	entry := s.post(day(2026, 1, 10), "1000", "3000", "42")

	first, err := s.svc.Journal.GetEntry(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	second, err := s.svc.Journal.GetEntry(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(first, second)

	byNumber, err := s.svc.Journal.GetEntryByNumber(s.ctx, entry.EntryNumber)
	s.Require().NoError(err)
	s.Equal(first.EntryID, byNumber.EntryID)

	s.equalAmount("42", s.balance("1000"))
	s.equalAmount("42", s.balance("1000"))
}

func (s *LedgerScenarioSuite) TestListEntriesPaginates() {
	for i := 1; i <= 5; i++ {
		s.post(day(2026, 1, i), "1000", "3000", "1")
	}

	page, err := s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 2)
	s.Require().NotNil(page.NextToken)
	s.Equal(day(2026, 1, 5), page.Entries[0].EntryDate)
	s.equalAmount("1", page.Entries[0].TotalDebit)

	seen := len(page.Entries)
	for page.NextToken != nil {
		page, err = s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: page.NextToken})
		s.Require().NoError(err)
		seen += len(page.Entries)
	}
	s.Equal(5, seen)
}
