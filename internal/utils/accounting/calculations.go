package accounting

import (
	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinEntryLines is the smallest number of lines a journal entry may carry.
const MinEntryLines = 2

// ValidateEntryLines checks the per-line rules and the double-entry invariant.
// Each line carries exactly one positive side, and the debit total equals the
// credit total with exact decimal equality. Violations are domain errors.
func ValidateEntryLines(lines []domain.JournalEntryLine) error {
	if len(lines) < MinEntryLines {
		return apperrors.NewDomainError("Journal entry must have at least two lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, l := range lines {
		n := i + 1
		if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
			return apperrors.NewDomainError("Line %d: amounts cannot be negative", n)
		}
		hasDebit := l.DebitAmount.IsPositive()
		hasCredit := l.CreditAmount.IsPositive()
		if hasDebit && hasCredit {
			return apperrors.NewDomainError("Line %d: a line cannot have both debit and credit amounts", n)
		}
		if !hasDebit && !hasCredit {
			return apperrors.NewDomainError("Line %d: each line must have either a debit or credit amount", n)
		}
		totalDebit = totalDebit.Add(l.DebitAmount)
		totalCredit = totalCredit.Add(l.CreditAmount)
	}

	if !totalDebit.Equal(totalCredit) {
		return apperrors.NewDomainError("Journal entry is not balanced: debits %s, credits %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}

// TrialBalanceColumns places an oriented balance into the debit or credit column.
// A non-negative balance lands on the account's normal side; a negative balance
// lands, as an absolute value, on the opposite side.
func TrialBalanceColumns(accountType domain.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	debitSide := accountType.IsDebitNormal()
	if balance.IsNegative() {
		debitSide = !debitSide
	}
	if debitSide {
		return balance.Abs(), decimal.Zero
	}
	return decimal.Zero, balance.Abs()
}

// SumBalances adds up the balances of a set of statement line items.
func SumBalances(items []domain.AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Balance)
	}
	return total
}
