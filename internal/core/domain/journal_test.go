package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(accountID string, debit, credit int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID:    accountID,
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalEntryLine
		want  bool
	}{
		{
			name:  "simple balanced entry",
			lines: []domain.JournalEntryLine{line("cash", 1500, 0), line("revenue", 0, 1500)},
			want:  true,
		},
		{
			name:  "split credit side",
			lines: []domain.JournalEntryLine{line("cash", 1000, 0), line("revenue", 0, 600), line("tax", 0, 400)},
			want:  true,
		},
		{
			name:  "unbalanced by one",
			lines: []domain.JournalEntryLine{line("cash", 1000, 0), line("revenue", 0, 999)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Lines: tt.lines}
			assert.Equal(t, tt.want, entry.IsBalanced())
		})
	}
}

func TestJournalEntry_ExactDecimalEquality(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		{AccountID: "a", DebitAmount: decimal.RequireFromString("0.1"), CreditAmount: decimal.Zero},
		{AccountID: "a", DebitAmount: decimal.RequireFromString("0.2"), CreditAmount: decimal.Zero},
		{AccountID: "b", DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("0.3")},
	}}
	assert.True(t, entry.IsBalanced())
	assert.Equal(t, []string{"a", "b"}, entry.AccountIDs())
}
