package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
)

// BankAccountSvc manages the bank accounts statements are imported into.
type BankAccountSvc interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)
	GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error)
}

// ReconciliationSvc matches imported bank transactions with posted journal lines.
type ReconciliationSvc interface {
	// ImportStatement stores a batch of statement lines as unreconciled.
	ImportStatement(ctx context.Context, bankAccountID string, req dto.ImportStatementRequest, userID string) ([]domain.BankStatementLine, error)

	ListStatementLines(ctx context.Context, bankAccountID string, params dto.ListStatementLinesParams) ([]domain.BankStatementLine, error)

	// ReconcileStatementLine marks a statement line reconciled against a posted line of
	// the bank's GL account. The signed amounts must be equal.
	ReconcileStatementLine(ctx context.Context, statementLineID, journalLineID string, userID string) (*domain.BankStatementLine, error)

	// UnreconcileStatementLine clears the match of a statement line.
	UnreconcileStatementLine(ctx context.Context, statementLineID string, userID string) (*domain.BankStatementLine, error)

	// GetReconciledBalance is the opening balance plus every reconciled line.
	GetReconciledBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error)

	// GetReconciliationSummary compares the GL balance with the reconciled balance.
	GetReconciliationSummary(ctx context.Context, bankAccountID string) (*domain.ReconciliationSummary, error)

	// FindPotentialMatches lists posted lines of the GL account dated within
	// domain.MatchWindowDays of the statement line's transaction date.
	FindPotentialMatches(ctx context.Context, statementLineID string) (*domain.BankStatementLine, []domain.PostedLine, error)
}

// BankSvcFacade combines bank account and reconciliation service interfaces
type BankSvcFacade interface {
	BankAccountSvc
	ReconciliationSvc
}
