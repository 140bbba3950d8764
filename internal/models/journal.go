package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID     string       `db:"entry_id"`
	EntryNumber string       `db:"entry_number"`
	EntryDate   time.Time    `db:"entry_date"`
	Description string       `db:"description"`
	Reference   string       `db:"reference"`
	Status      string       `db:"status"`
	PostedAt    sql.NullTime `db:"posted_at"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table.
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNumber   int             `db:"line_number"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
}
