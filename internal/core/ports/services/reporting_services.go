package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReportingSvc composes financial statements.
type ReportingSvc interface {
	// GetTrialBalance lists every account with a non-zero balance as of a date.
	// Inactive accounts that still carry a balance at that date are included, so
	// historical trial balances keep matching totals; zero-balance accounts are omitted.
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// GetProfitAndLoss covers revenue and expense activity between two dates inclusive.
	GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)

	// GetBalanceSheet reports assets, liabilities, equity and retained earnings as of a date.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// GetGeneralLedger lists one account's posted lines with a running balance.
	GetGeneralLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.GeneralLedger, error)

	// GetDashboard summarises the ledger as of a date.
	GetDashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error)
}
