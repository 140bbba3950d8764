package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates where a journal entry is in its lifecycle.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "DRAFT"
	EntryPosted EntryStatus = "POSTED"
	EntryVoid   EntryStatus = "VOID"
)

// JournalEntryPrefix is the numbering prefix for journal entries.
const JournalEntryPrefix = "JE"

// JournalEntry is a dated, numbered set of lines whose debits and credits balance.
// Lines are only mutable while the entry is a draft.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`
	EntryNumber string             `json:"entryNumber"` // JE-yyyyMM-0001
	EntryDate   time.Time          `json:"entryDate"`
	Description string             `json:"description"`
	Reference   string             `json:"reference"`
	Status      EntryStatus        `json:"status"`
	PostedAt    *time.Time         `json:"postedAt,omitempty"`
	Lines       []JournalEntryLine `json:"lines"`
	AuditFields
}

// JournalEntryLine is a single debit or credit against one account.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// IsDraft reports whether the entry can still be modified, posted or deleted.
func (e JournalEntry) IsDraft() bool { return e.Status == EntryDraft }

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// IsBalanced compares both sides with exact decimal equality.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// AccountIDs returns the distinct account ids referenced by the lines, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// EntryFilter narrows entry listings. Zero values mean no constraint.
type EntryFilter struct {
	Status   EntryStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// PostedLine is a posted journal line joined with its entry header, as read by the
// general ledger and bank reconciliation.
type PostedLine struct {
	LineID           string
	AccountID        string
	EntryID          string
	EntryNumber      string
	EntryDate        time.Time
	Reference        string
	EntryDescription string
	LineDescription  string
	DebitAmount      decimal.Decimal
	CreditAmount     decimal.Decimal
}

// SignedAmount is debit minus credit.
func (p PostedLine) SignedAmount() decimal.Decimal {
	return p.DebitAmount.Sub(p.CreditAmount)
}
