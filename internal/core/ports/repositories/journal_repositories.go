package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines ordered by line number.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByNumber retrieves an entry by its entry number.
	FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)

	// ListEntries returns entries newest first using token-based pagination.
	// It returns the entries (without lines), a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountEntriesByStatus counts entries in the given status.
	CountEntriesByStatus(ctx context.Context, status domain.EntryStatus) (int, error)

	// FindPostedLine returns a single line of a posted entry. Lines of draft or void
	// entries are reported as not found.
	FindPostedLine(ctx context.Context, lineID string) (*domain.PostedLine, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// FindEntryForUpdate reads an entry and locks it until the enclosing transaction ends.
	// Status transitions must read through it so concurrent callers serialize.
	FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// SaveEntry persists a new entry and its lines. A taken entry number yields apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry rewrites the header fields of an entry and replaces its lines.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus changes the status. postedAt is stored when non-nil.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, userID string, now time.Time) error

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error
}

// BalanceReader aggregates posted journal lines. Only POSTED entries are counted.
type BalanceReader interface {
	// SumPostedLines returns the debit and credit totals for an account over entries
	// whose entry date lies within [from, to]. A nil bound is open.
	SumPostedLines(ctx context.Context, accountID string, from, to *time.Time) (debit, credit decimal.Decimal, err error)

	// ListPostedLines returns posted lines of an account within [from, to] ordered by
	// entry date, then entry number, then line number.
	ListPostedLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.PostedLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	BalanceReader
}
