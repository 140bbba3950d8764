package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	ledger := cfg.Ledger
	container := &portssvc.ServiceContainer{}

	container.Sequence = NewSequenceService(repos.SequenceRepo)
	container.Currency = NewCurrencyService(repos.TxManager, repos.CurrencyRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountBalances(repos.JournalRepo),
		WithAccountTxManager(repos.TxManager),
		WithAccountCurrencies(repos.CurrencyRepo),
	)
	container.Balance = NewBalanceService(repos.AccountRepo, repos.JournalRepo)

	// The posting guard only applies when fiscal years are enforced.
	var journalOpts []JournalOption
	if ledger.EnforceFiscalYear {
		journalOpts = append(journalOpts, WithFiscalYearGuard(repos.FiscalYearRepo))
	}
	container.Journal = NewJournalService(
		repos.TxManager,
		repos.JournalRepo,
		repos.AccountRepo,
		container.Sequence,
		journalOpts...,
	)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.JournalRepo,
		WithReportConcurrency(ledger.ReportConcurrency),
		WithFiscalYears(repos.FiscalYearRepo),
		WithDashboardAccounts(ledger.CashAccountCode, ledger.ReceivableAccountCode),
		WithInvoices(repos.InvoiceRepo),
	)

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Invoice = NewInvoiceService(
		repos.TxManager,
		repos.InvoiceRepo,
		repos.CustomerRepo,
		repos.AccountRepo,
		container.Journal,
		container.Sequence,
		PostingAccounts{
			Receivable: ledger.ReceivableAccountCode,
			Revenue:    ledger.RevenueAccountCode,
			Cash:       ledger.CashAccountCode,
		},
		WithInvoiceCurrencies(repos.CurrencyRepo),
	)
	container.FiscalYear = NewFiscalYearService(repos.TxManager, repos.FiscalYearRepo)
	container.Bank = NewBankService(
		repos.TxManager,
		repos.BankRepo,
		repos.AccountRepo,
		repos.JournalRepo,
		WithBankCurrencies(repos.CurrencyRepo),
	)

	return container
}
