package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	// ListBankAccounts returns accounts ordered by name.
	ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
}

// StatementReader defines read operations for imported statement lines.
type StatementReader interface {
	FindStatementLineByID(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error)

	// ListStatementLines returns lines ordered by transaction date, then import order.
	ListStatementLines(ctx context.Context, filter domain.StatementLineFilter) ([]domain.BankStatementLine, error)

	// SumReconciled nets credits minus debits over the reconciled lines of an account.
	SumReconciled(ctx context.Context, bankAccountID string) (decimal.Decimal, error)

	CountUnreconciled(ctx context.Context, bankAccountID string) (int, error)

	// IsJournalLineMatched reports whether any statement line is reconciled against lineID.
	IsJournalLineMatched(ctx context.Context, journalLineID string) (bool, error)
}

// StatementWriter defines write operations for imported statement lines.
type StatementWriter interface {
	// FindStatementLineForUpdate reads a line and locks it until the enclosing transaction ends.
	FindStatementLineForUpdate(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error)

	SaveStatementLines(ctx context.Context, lines []domain.BankStatementLine) error

	// UpdateStatementMatch stores the reconciled flag and the matched journal line.
	UpdateStatementMatch(ctx context.Context, line domain.BankStatementLine) error
}

// BankRepositoryFacade combines bank account and statement repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	StatementReader
	StatementWriter
}
