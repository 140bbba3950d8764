package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	BankAccountID  string          `db:"bank_account_id"`
	AccountName    string          `db:"account_name"`
	BankName       string          `db:"bank_name"`
	AccountNumber  string          `db:"account_number"`
	CurrencyCode   sql.NullString  `db:"currency_code"`
	GLAccountID    string          `db:"gl_account_id"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// BankStatementLine is a row of the bank_statement_lines table.
type BankStatementLine struct {
	StatementLineID string          `db:"statement_line_id"`
	BankAccountID   string          `db:"bank_account_id"`
	StatementDate   time.Time       `db:"statement_date"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Reference       string          `db:"reference"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	IsReconciled    bool            `db:"is_reconciled"`
	MatchedLineID   sql.NullString  `db:"matched_line_id"`
	AuditFields
}
