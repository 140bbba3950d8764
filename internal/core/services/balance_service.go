package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	balanceRepo portsrepo.BalanceReader
}

// NewBalanceService creates the read-time balance aggregator.
func NewBalanceService(accountRepo portsrepo.AccountReader, balanceRepo portsrepo.BalanceReader) portssvc.BalanceSvc {
	return &balanceService{accountRepo: accountRepo, balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// accountBalance aggregates posted lines of one account and orients the result by its type.
func accountBalance(ctx context.Context, repo portsrepo.BalanceReader, account domain.Account, from, to *time.Time) (decimal.Decimal, error) {
	debit, credit, err := repo.SumPostedLines(ctx, account.AccountID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return account.AccountType.OrientedBalance(debit, credit), nil
}

func (s *balanceService) balance(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	bal, err := accountBalance(ctx, s.balanceRepo, *account, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account balance")
		return decimal.Zero, err
	}
	return bal, nil
}

func (s *balanceService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return s.balance(ctx, accountID, nil, nil)
}

func (s *balanceService) GetBalanceAsOfDate(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	return s.balance(ctx, accountID, nil, &asOf)
}

func (s *balanceService) GetBalanceForRange(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	if domain.DateOnly(end).Before(domain.DateOnly(start)) {
		return decimal.Zero, apperrors.NewValidationError("endDate", "must not be before startDate")
	}
	return s.balance(ctx, accountID, &start, &end)
}
