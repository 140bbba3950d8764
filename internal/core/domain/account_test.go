package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountType_NormalBalance(t *testing.T) {
	tests := []struct {
		accountType   domain.AccountType
		want          domain.NormalBalance
		balanceSheet  bool
		incomeStmt    bool
	}{
		{domain.Asset, domain.DebitNormal, true, false},
		{domain.Expense, domain.DebitNormal, false, true},
		{domain.Liability, domain.CreditNormal, true, false},
		{domain.Equity, domain.CreditNormal, true, false},
		{domain.Revenue, domain.CreditNormal, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.True(t, tt.accountType.IsValid())
			assert.Equal(t, tt.want, tt.accountType.NormalBalance())
			assert.Equal(t, tt.balanceSheet, tt.accountType.IsBalanceSheet())
			assert.Equal(t, tt.incomeStmt, tt.accountType.IsIncomeStatement())
		})
	}

	assert.False(t, domain.AccountType("INCOME").IsValid())
}

func TestAccountType_OrientedBalance(t *testing.T) {
	debit := decimal.NewFromInt(1000)
	credit := decimal.NewFromInt(250)

	assert.True(t, domain.Asset.OrientedBalance(debit, credit).Equal(decimal.NewFromInt(750)))
	assert.True(t, domain.Revenue.OrientedBalance(debit, credit).Equal(decimal.NewFromInt(-750)))
	assert.True(t, domain.Liability.OrientedBalance(credit, debit).Equal(decimal.NewFromInt(750)))
}
