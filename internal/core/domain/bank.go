package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchWindowDays bounds how far a journal line's date may sit from a
// statement line's transaction date to be offered as a match.
const MatchWindowDays = 7

// BankAccount is a real bank account mirrored by an asset account in the ledger.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	AccountName    string          `json:"accountName"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	CurrencyCode   string          `json:"currencyCode,omitempty"`
	GLAccountID    string          `json:"glAccountID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// BankStatementLine is one imported bank transaction. Amounts follow the bank's
// view: a credit is money in, a debit is money out.
type BankStatementLine struct {
	StatementLineID string          `json:"statementLineID"`
	BankAccountID   string          `json:"bankAccountID"`
	StatementDate   time.Time       `json:"statementDate"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	IsReconciled    bool            `json:"isReconciled"`
	MatchedLineID   string          `json:"matchedLineID,omitempty"` // journal line, set while reconciled
	AuditFields
}

// NetAmount is the signed effect on the bank balance.
func (l BankStatementLine) NetAmount() decimal.Decimal {
	return l.CreditAmount.Sub(l.DebitAmount)
}

// Matches reports whether a posted journal line moves the ledger by the same
// signed amount the statement line moves the bank.
func (l BankStatementLine) Matches(p PostedLine) bool {
	return l.NetAmount().Equal(p.SignedAmount())
}

// MatchWindow returns the inclusive date range searched for candidate journal lines.
func (l BankStatementLine) MatchWindow() (from, to time.Time) {
	d := DateOnly(l.TransactionDate)
	return d.AddDate(0, 0, -MatchWindowDays), d.AddDate(0, 0, MatchWindowDays)
}

// StatementLineFilter narrows statement listings. Zero values mean no constraint.
type StatementLineFilter struct {
	BankAccountID    string
	From             *time.Time // on statement date
	To               *time.Time
	UnreconciledOnly bool
}

// ReconciliationSummary compares what the bank confirmed with what the ledger holds.
type ReconciliationSummary struct {
	BankAccountID     string          `json:"bankAccountID"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"` // opening + reconciled lines
	GLBalance         decimal.Decimal `json:"glBalance"`
	Difference        decimal.Decimal `json:"difference"` // GL minus reconciled
	UnreconciledCount int             `json:"unreconciledCount"`
}
