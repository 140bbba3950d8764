package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultReportConcurrency = 8

// reportingService composes financial statements from account balances.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
	fiscalYears portsrepo.FiscalYearReader
	concurrency int
	cashCode    string
	arCode      string
}

// ReportingOption configures the reporting service.
type ReportingOption func(*reportingService)

// WithReportConcurrency bounds the number of balance queries in flight per report.
func WithReportConcurrency(n int) ReportingOption {
	return func(s *reportingService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithFiscalYears lets the balance sheet split retained earnings at the fiscal year start.
func WithFiscalYears(repo portsrepo.FiscalYearReader) ReportingOption {
	return func(s *reportingService) {
		s.fiscalYears = repo
	}
}

// WithDashboardAccounts sets the cash and receivable account codes shown on the dashboard.
func WithDashboardAccounts(cashCode, receivableCode string) ReportingOption {
	return func(s *reportingService) {
		s.cashCode = cashCode
		s.arCode = receivableCode
	}
}

// WithInvoices enables the overdue figures of the dashboard.
func WithInvoices(repo portsrepo.InvoiceReader) ReportingOption {
	return func(s *reportingService) {
		s.invoiceRepo = repo
	}
}

// NewReportingService creates the financial statement generator.
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalRepositoryFacade, options ...ReportingOption) portssvc.ReportingSvc {
	svc := &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		concurrency: defaultReportConcurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// balances computes the balance of each account concurrently, preserving input order.
func (s *reportingService) balances(ctx context.Context, accounts []domain.Account, from, to *time.Time) ([]domain.AccountBalance, error) {
	out := make([]domain.AccountBalance, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, a := range accounts {
		g.Go(func() error {
			bal, err := accountBalance(gctx, s.journalRepo, a, from, to)
			if err != nil {
				return err
			}
			out[i] = domain.NewAccountBalance(a, bal)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// statementLines lists the non-zero balances of one account type.
func (s *reportingService) statementLines(ctx context.Context, accountType domain.AccountType, from, to *time.Time) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{AccountType: accountType})
	if err != nil {
		return nil, err
	}
	all, err := s.balances(ctx, accounts, from, to)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.AccountBalance, 0, len(all))
	for _, b := range all {
		if !b.Balance.IsZero() {
			lines = append(lines, b)
		}
	}
	return lines, nil
}

func checkRange(from, to time.Time) error {
	if domain.DateOnly(to).Before(domain.DateOnly(from)) {
		return apperrors.NewValidationError("to", "must not be before from")
	}
	return nil
}

// GetTrialBalance lists every account with a non-zero balance as of asOf in debit and credit columns.
// Accounts are not filtered by the active flag: an account deactivated after asOf
// may still hold a balance on that date. Zero-balance rows are left out.
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.DateOnly(asOf)
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		return nil, err
	}
	balances, err := s.balances(ctx, accounts, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute trial balance")
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOfDate:    asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		// inactive accounts always have a zero current balance; past dates may still show them
		if b.Balance.IsZero() {
			continue
		}
		debit, credit := accounting.TrialBalanceColumns(b.AccountType, b.Balance)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{AccountBalance: b, Debit: debit, Credit: credit})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}
	tb.IsBalanced = tb.TotalDebit.Equal(tb.TotalCredit)
	if !tb.IsBalanced {
		s.LogError(ctx, errors.New("trial balance out of balance"), "Ledger integrity check failed",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}
	return tb, nil
}

func (s *reportingService) GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)

	revenue, err := s.statementLines(ctx, domain.Revenue, &from, &to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.statementLines(ctx, domain.Expense, &from, &to)
	if err != nil {
		return nil, err
	}

	pl := &domain.ProfitAndLoss{
		StartDate:     from,
		EndDate:       to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  accounting.SumBalances(revenue),
		TotalExpenses: accounting.SumBalances(expenses),
	}
	pl.NetIncome = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl, nil
}

// earningsThrough is cumulative revenue minus expenses for entries dated on or before asOf.
func (s *reportingService) earningsThrough(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	revenue, err := s.statementLines(ctx, domain.Revenue, nil, &asOf)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.statementLines(ctx, domain.Expense, nil, &asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SumBalances(revenue).Sub(accounting.SumBalances(expenses)), nil
}

// periodStart is the first day of the fiscal year containing asOf, or January 1st without one.
func (s *reportingService) periodStart(ctx context.Context, asOf time.Time) (time.Time, error) {
	if s.fiscalYears != nil {
		fy, err := s.fiscalYears.FindFiscalYearForDate(ctx, asOf)
		if err == nil {
			return domain.DateOnly(fy.StartDate), nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return time.Time{}, err
		}
	}
	return time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
}

func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	asOf = domain.DateOnly(asOf)

	bs := &domain.BalanceSheet{AsOfDate: asOf}
	var err error
	if bs.Assets, err = s.statementLines(ctx, domain.Asset, nil, &asOf); err != nil {
		return nil, err
	}
	if bs.Liabilities, err = s.statementLines(ctx, domain.Liability, nil, &asOf); err != nil {
		return nil, err
	}
	if bs.Equity, err = s.statementLines(ctx, domain.Equity, nil, &asOf); err != nil {
		return nil, err
	}
	bs.TotalAssets = accounting.SumBalances(bs.Assets)
	bs.TotalLiabilities = accounting.SumBalances(bs.Liabilities)
	bs.TotalEquity = accounting.SumBalances(bs.Equity)

	start, err := s.periodStart(ctx, asOf)
	if err != nil {
		return nil, err
	}
	total, err := s.earningsThrough(ctx, asOf)
	if err != nil {
		return nil, err
	}
	prior, err := s.earningsThrough(ctx, start.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	bs.PriorPeriodEarnings = prior
	bs.CurrentPeriodEarnings = total.Sub(prior)
	bs.RetainedEarnings = total

	bs.IsBalanced = bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.RetainedEarnings))
	return bs, nil
}

// GetGeneralLedger lists the posted lines of one account with a running balance.
func (s *reportingService) GetGeneralLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.GeneralLedger, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	from, to = domain.DateOnly(from), domain.DateOnly(to)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	dayBefore := from.AddDate(0, 0, -1)
	opening, err := accountBalance(ctx, s.journalRepo, *account, nil, &dayBefore)
	if err != nil {
		return nil, err
	}
	posted, err := s.journalRepo.ListPostedLines(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	gl := &domain.GeneralLedger{
		Account:        domain.NewAccountBalance(*account, opening),
		StartDate:      from,
		EndDate:        to,
		OpeningBalance: opening,
		Lines:          make([]domain.GeneralLedgerLine, 0, len(posted)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	running := opening
	for _, p := range posted {
		running = running.Add(account.AccountType.OrientedBalance(p.DebitAmount, p.CreditAmount))
		description := p.LineDescription
		if description == "" {
			description = p.EntryDescription
		}
		gl.Lines = append(gl.Lines, domain.GeneralLedgerLine{
			EntryID:        p.EntryID,
			EntryNumber:    p.EntryNumber,
			EntryDate:      p.EntryDate,
			Reference:      p.Reference,
			Description:    description,
			Debit:          p.DebitAmount,
			Credit:         p.CreditAmount,
			RunningBalance: running,
		})
		gl.TotalDebit = gl.TotalDebit.Add(p.DebitAmount)
		gl.TotalCredit = gl.TotalCredit.Add(p.CreditAmount)
	}
	gl.ClosingBalance = running
	gl.Account.Balance = running
	return gl, nil
}

func (s *reportingService) balanceByCode(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, nil
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return accountBalance(ctx, s.journalRepo, *account, nil, &asOf)
}

// GetDashboard summarizes the ledger as of a day, with income figures for that day's month.
func (s *reportingService) GetDashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error) {
	asOf = domain.DateOnly(asOf)
	bs, err := s.GetBalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	pl, err := s.GetProfitAndLoss(ctx, monthStart, asOf)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		AsOfDate:         asOf,
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity.Add(bs.RetainedEarnings),
		MonthRevenue:     pl.TotalRevenue,
		MonthExpenses:    pl.TotalExpenses,
		MonthNetIncome:   pl.NetIncome,
		OverdueAmount:    decimal.Zero,
	}
	if d.CashBalance, err = s.balanceByCode(ctx, s.cashCode, asOf); err != nil {
		return nil, err
	}
	if d.ReceivablesBalance, err = s.balanceByCode(ctx, s.arCode, asOf); err != nil {
		return nil, err
	}
	if d.PendingDraftEntries, err = s.journalRepo.CountEntriesByStatus(ctx, domain.EntryDraft); err != nil {
		return nil, err
	}

	if s.invoiceRepo != nil {
		// OVERDUE invoices plus SENT ones already past due that have not been reclassified yet
		overdue, err := s.invoiceRepo.ListInvoices(ctx, domain.InvoiceFilter{Status: domain.InvoiceOverdue})
		if err != nil {
			return nil, err
		}
		pastDue, err := s.invoiceRepo.ListOverdueInvoices(ctx, asOf)
		if err != nil {
			return nil, err
		}
		for _, inv := range append(overdue, pastDue...) {
			d.OverdueInvoices++
			d.OverdueAmount = d.OverdueAmount.Add(inv.Outstanding())
		}
	}
	return d, nil
}
