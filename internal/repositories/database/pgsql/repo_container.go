package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      newPgxTxManager(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		CustomerRepo:   newPgxCustomerRepository(dbPool),
		SequenceRepo:   newPgxSequenceRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		BankRepo:       newPgxBankRepository(dbPool),
	}
}
