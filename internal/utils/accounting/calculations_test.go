package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func l(debit, credit string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID:    "acc",
		DebitAmount:  decimal.RequireFromString(debit),
		CreditAmount: decimal.RequireFromString(credit),
	}
}

func TestValidateEntryLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntryLine
		wantMsg string
	}{
		{"balanced", []domain.JournalEntryLine{l("1500", "0"), l("0", "1500")}, ""},
		{"balanced with cents", []domain.JournalEntryLine{l("10.10", "0"), l("0", "5.05"), l("0", "5.05")}, ""},
		{"single line", []domain.JournalEntryLine{l("100", "0")}, "Journal entry must have at least two lines"},
		{"both sides", []domain.JournalEntryLine{l("100", "100"), l("0", "0.01")}, "Line 1: a line cannot have both debit and credit amounts"},
		{"empty line", []domain.JournalEntryLine{l("100", "0"), l("0", "0")}, "Line 2: each line must have either a debit or credit amount"},
		{"negative", []domain.JournalEntryLine{l("-100", "0"), l("0", "100")}, "Line 1: amounts cannot be negative"},
		{"unbalanced", []domain.JournalEntryLine{l("100", "0"), l("0", "99.99")}, "Journal entry is not balanced: debits 100, credits 99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryLines(tt.lines)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantMsg)
			assert.True(t, errors.Is(err, apperrors.ErrDomain))
		})
	}
}

func TestTrialBalanceColumns(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		balance     int64
		wantDebit   int64
		wantCredit  int64
	}{
		{"asset normal", domain.Asset, 500, 500, 0},
		{"asset overdrawn", domain.Asset, -200, 0, 200},
		{"revenue normal", domain.Revenue, 700, 0, 700},
		{"liability abnormal", domain.Liability, -50, 50, 0},
		{"zero expense", domain.Expense, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c := TrialBalanceColumns(tt.accountType, decimal.NewFromInt(tt.balance))
			assert.True(t, d.Equal(decimal.NewFromInt(tt.wantDebit)), "debit %s", d)
			assert.True(t, c.Equal(decimal.NewFromInt(tt.wantCredit)), "credit %s", c)
		})
	}
}
