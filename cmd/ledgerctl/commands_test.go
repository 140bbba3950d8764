package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainerCfg() *config.Config {
	return &config.Config{Store: config.StoreMemory, Ledger: config.DefaultLedgerConfig()}
}

func TestSeedDefaultChart_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(newContainerCfg(), memory.NewRepositoryProvider(memory.New()))

	first, err := seedDefaultChart(ctx, svc.Account, "seed")
	require.NoError(t, err)
	require.Len(t, first, len(defaultChart))

	second, err := seedDefaultChart(ctx, svc.Account, "seed")
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].AccountID, second[i].AccountID, "code %s", first[i].Code)
	}

	retained, err := svc.Account.GetAccountByCode(ctx, "3100")
	require.NoError(t, err)
	assert.Equal(t, domain.Equity, retained.AccountType)
}

func TestSeedBaseCurrency(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServiceContainer(newContainerCfg(), memory.NewRepositoryProvider(memory.New()))
	usd := dto.CreateCurrencyRequest{Code: "USD", Name: "US Dollar", Symbol: "$", IsBase: true}

	first, err := seedBaseCurrency(ctx, svc.Currency, usd, "seed")
	require.NoError(t, err)
	assert.True(t, first.IsBase)
	assert.True(t, first.ExchangeRate.Equal(decimal.NewFromInt(1)))

	again, err := seedBaseCurrency(ctx, svc.Currency, usd, "seed")
	require.NoError(t, err)
	assert.Equal(t, first.CurrencyID, again.CurrencyID)

	// a configured base wins over the seed flags
	other, err := seedBaseCurrency(ctx, svc.Currency, dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro", IsBase: true}, "seed")
	require.NoError(t, err)
	assert.Equal(t, "USD", other.Code)

	all, err := svc.Currency.ListCurrencies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPrintTrialBalance(t *testing.T) {
	tb := &domain.TrialBalance{
		AsOfDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Rows: []domain.TrialBalanceRow{
			{
				AccountBalance: domain.AccountBalance{Code: "1000", Name: "Cash", AccountType: domain.Asset, Balance: decimal.NewFromInt(150)},
				Debit:          decimal.NewFromInt(150),
				Credit:         decimal.Zero,
			},
			{
				AccountBalance: domain.AccountBalance{Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, Balance: decimal.NewFromInt(150)},
				Debit:          decimal.Zero,
				Credit:         decimal.NewFromInt(150),
			},
		},
		TotalDebit:  decimal.NewFromInt(150),
		TotalCredit: decimal.NewFromInt(150),
		IsBalanced:  true,
	}

	var buf bytes.Buffer
	printTrialBalance(&buf, tb)

	out := buf.String()
	assert.Contains(t, out, "Trial balance as of 2026-03-31")
	assert.Contains(t, out, "Sales Revenue")
	assert.Contains(t, out, "150.00")
	assert.NotContains(t, out, "WARNING")
}
