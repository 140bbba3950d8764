package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entrySelect = `
SELECT entry_id, entry_number, entry_date, description, reference, status, posted_at,
	created_at, created_by, last_updated_at, last_updated_by
FROM journal_entries
`

const lineSelect = `
SELECT line_id, entry_id, line_number, account_id, debit_amount, credit_amount, description
FROM journal_entry_lines
`

// loadLines fetches the lines of the given entries grouped by entry id, in line order.
func (r *PgxJournalRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]models.JournalEntryLine, error) {
	grouped := make(map[string][]models.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return grouped, nil
	}
	rows, err := r.db(ctx).Query(ctx, lineSelect+"WHERE entry_id = ANY($1) ORDER BY entry_id, line_number", entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect journal lines", err)
	}
	for _, l := range lines {
		grouped[l.EntryID] = append(grouped[l.EntryID], l)
	}
	return grouped, nil
}

func (r *PgxJournalRepository) getEntry(ctx context.Context, key, filterQuery string, args ...any) (*domain.JournalEntry, error) {
	rows, err := r.db(ctx).Query(ctx, entrySelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry", err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, mapReadError(err, "journal entry", key)
	}
	lines, err := r.loadLines(ctx, []string{header.EntryID})
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainJournalEntry(header, lines[header.EntryID])
	return &e, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.getEntry(ctx, entryID, "WHERE entry_id = $1", entryID)
}

// FindEntryForUpdate takes a row lock on the entry header. Lines are only
// rewritten through the header, so locking it is enough.
func (r *PgxJournalRepository) FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.getEntry(ctx, entryID, "WHERE entry_id = $1 FOR UPDATE", entryID)
}

func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	return r.getEntry(ctx, entryNumber, "WHERE entry_number = $1", entryNumber)
}

// ListEntries pages through entries newest first using a (date, created_at, id) keyset.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(string(filter.Status)))
	}
	if filter.FromDate != nil {
		conds = append(conds, "entry_date >= "+arg(dateArg(filter.FromDate)))
	}
	if filter.ToDate != nil {
		conds = append(conds, "entry_date <= "+arg(dateArg(filter.ToDate)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", err.Error())
		}
		conds = append(conds, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			arg(cursor.Date), arg(cursor.CreatedAt), arg(cursor.ID)))
	}

	query := entrySelect
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	// fetch one extra row to learn whether another page exists
	query += "ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT " + arg(limit+1)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to collect journal entries", err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
		next = &token
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, next, nil
}

func (r *PgxJournalRepository) CountEntriesByStatus(ctx context.Context, status domain.EntryStatus) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries", err)
	}
	return n, nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(`
			INSERT INTO journal_entry_lines (line_id, entry_id, line_number, account_id, debit_amount, credit_amount, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			m.LineID, m.EntryID, m.LineNumber, m.AccountID, m.DebitAmount, m.CreditAmount, m.Description,
		)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return mapWriteError(err, "journal line")
		}
	}
	return nil
}

// SaveEntry inserts the header and lines. Callers wrap it in a transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, description, reference, status, posted_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.EntryNumber, m.EntryDate, m.Description, m.Reference, m.Status, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "journal entry "+m.EntryNumber)
	}
	return r.insertLines(ctx, entry.Lines)
}

// UpdateEntry rewrites the header fields and replaces every line.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, m.EntryID, m.EntryDate, m.Description, m.Reference, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry", m.EntryID)
	}
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to replace journal lines", err)
	}
	return r.insertLines(ctx, entry.Lines)
}

func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_at = COALESCE($3, posted_at), last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, entryID, string(status), postedAt, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry", entryID)
	}
	return nil
}

// DeleteEntry removes the entry; lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry", entryID)
	}
	return nil
}

// SumPostedLines aggregates the posted lines of one account. Nil bounds are open.
func (r *PgxJournalRepository) SumPostedLines(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status = 'POSTED'
		  AND ($2::date IS NULL OR e.entry_date >= $2::date)
		  AND ($3::date IS NULL OR e.entry_date <= $3::date);
	`
	var debit, credit decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, accountID, dateArg(from), dateArg(to)).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines", err)
	}
	return debit, credit, nil
}

func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.PostedLine, error) {
	query := postedLineSelect + `
		WHERE l.account_id = $1
		  AND e.status = 'POSTED'
		  AND e.entry_date BETWEEN $2 AND $3
		ORDER BY e.entry_date, e.entry_number, l.line_number;
	`
	rows, err := r.db(ctx).Query(ctx, query, accountID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted lines", err)
	}
	lines, err := pgx.CollectRows(rows, scanPostedLine)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect posted lines", err)
	}
	return lines, nil
}

const postedLineSelect = `
SELECT l.line_id, l.account_id, e.entry_id, e.entry_number, e.entry_date, e.reference, e.description,
	l.description, l.debit_amount, l.credit_amount
FROM journal_entry_lines l
JOIN journal_entries e ON e.entry_id = l.entry_id`

func scanPostedLine(row pgx.CollectableRow) (domain.PostedLine, error) {
	var p domain.PostedLine
	err := row.Scan(&p.LineID, &p.AccountID, &p.EntryID, &p.EntryNumber, &p.EntryDate, &p.Reference,
		&p.EntryDescription, &p.LineDescription, &p.DebitAmount, &p.CreditAmount)
	return p, err
}

func (r *PgxJournalRepository) FindPostedLine(ctx context.Context, lineID string) (*domain.PostedLine, error) {
	rows, err := r.db(ctx).Query(ctx, postedLineSelect+" WHERE l.line_id = $1 AND e.status = 'POSTED'", lineID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal line", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanPostedLine)
	if err != nil {
		return nil, mapReadError(err, "journal line", lineID)
	}
	return &p, nil
}
