package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSvc derives account balances from posted journal lines, oriented to each
// account's normal side. Balances can be negative.
type BalanceSvc interface {
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	GetBalanceAsOfDate(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
	GetBalanceForRange(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error)
}
