package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalEntryLine(nil), e.Lines...)
	if e.PostedAt != nil {
		t := *e.PostedAt
		e.PostedAt = &t
	}
	return e
}

func (s *Store) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	defer s.read(ctx)()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry", entryID)
	}
	e = cloneEntry(e)
	return &e, nil
}

// FindEntryForUpdate needs no extra locking: transactions hold the store's exclusive lock.
func (s *Store) FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.FindEntryByID(ctx, entryID)
}

func (s *Store) FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	defer s.read(ctx)()

	id, ok := s.entryNumbers[entryNumber]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry", entryNumber)
	}
	e := cloneEntry(s.entries[id])
	return &e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	defer s.read(ctx)()

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", err.Error())
		}
		cursor = &c
	}

	matched := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.FromDate != nil && e.EntryDate.Before(domain.DateOnly(*filter.FromDate)) {
			continue
		}
		if filter.ToDate != nil && e.EntryDate.After(domain.DateOnly(*filter.ToDate)) {
			continue
		}
		if cursor != nil && !cursor.Before(e.EntryDate, e.CreatedAt, e.EntryID) {
			continue
		}
		matched = append(matched, cloneEntry(e))
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.EntryID > b.EntryID
	})

	if limit <= 0 || len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
	return page, &token, nil
}

func (s *Store) CountEntriesByStatus(ctx context.Context, status domain.EntryStatus) (int, error) {
	defer s.read(ctx)()

	n := 0
	for _, e := range s.entries {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	defer s.write(ctx)()

	if _, exists := s.entryNumbers[entry.EntryNumber]; exists {
		return apperrors.ErrDuplicate
	}
	for _, l := range entry.Lines {
		if _, ok := s.accounts[l.AccountID]; !ok {
			return apperrors.NewNotFoundError("account", l.AccountID)
		}
	}
	s.entries[entry.EntryID] = cloneEntry(entry)
	s.entryNumbers[entry.EntryNumber] = entry.EntryID
	return nil
}

func (s *Store) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	defer s.write(ctx)()

	current, ok := s.entries[entry.EntryID]
	if !ok {
		return apperrors.NewNotFoundError("journal entry", entry.EntryID)
	}
	current.EntryDate = entry.EntryDate
	current.Description = entry.Description
	current.Reference = entry.Reference
	current.Lines = entry.Lines
	current.LastUpdatedAt = entry.LastUpdatedAt
	current.LastUpdatedBy = entry.LastUpdatedBy
	s.entries[entry.EntryID] = cloneEntry(current)
	return nil
}

func (s *Store) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, userID string, now time.Time) error {
	defer s.write(ctx)()

	e, ok := s.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("journal entry", entryID)
	}
	e = cloneEntry(e)
	e.Status = status
	if postedAt != nil {
		t := *postedAt
		e.PostedAt = &t
	}
	e.Touch(now, userID)
	s.entries[entryID] = e
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID string) error {
	defer s.write(ctx)()

	e, ok := s.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("journal entry", entryID)
	}
	delete(s.entries, entryID)
	delete(s.entryNumbers, e.EntryNumber)
	return nil
}

func withinDates(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(domain.DateOnly(*from)) {
		return false
	}
	if to != nil && date.After(domain.DateOnly(*to)) {
		return false
	}
	return true
}

func (s *Store) SumPostedLines(ctx context.Context, accountID string, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	defer s.read(ctx)()

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range s.entries {
		if e.Status != domain.EntryPosted || !withinDates(e.EntryDate, from, to) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			debit = debit.Add(l.DebitAmount)
			credit = credit.Add(l.CreditAmount)
		}
	}
	return debit, credit, nil
}

func (s *Store) ListPostedLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.PostedLine, error) {
	defer s.read(ctx)()

	type ordered struct {
		domain.PostedLine
		lineNumber int
	}
	rows := make([]ordered, 0)
	for _, e := range s.entries {
		if e.Status != domain.EntryPosted || !withinDates(e.EntryDate, &from, &to) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			rows = append(rows, ordered{
				PostedLine: domain.PostedLine{
					LineID:           l.LineID,
					AccountID:        l.AccountID,
					EntryID:          e.EntryID,
					EntryNumber:      e.EntryNumber,
					EntryDate:        e.EntryDate,
					Reference:        e.Reference,
					EntryDescription: e.Description,
					LineDescription:  l.Description,
					DebitAmount:      l.DebitAmount,
					CreditAmount:     l.CreditAmount,
				},
				lineNumber: l.LineNumber,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if a.EntryNumber != b.EntryNumber {
			return a.EntryNumber < b.EntryNumber
		}
		return a.lineNumber < b.lineNumber
	})

	out := make([]domain.PostedLine, len(rows))
	for i, r := range rows {
		out[i] = r.PostedLine
	}
	return out, nil
}

func (s *Store) FindPostedLine(ctx context.Context, lineID string) (*domain.PostedLine, error) {
	defer s.read(ctx)()

	for _, e := range s.entries {
		if e.Status != domain.EntryPosted {
			continue
		}
		for _, l := range e.Lines {
			if l.LineID != lineID {
				continue
			}
			return &domain.PostedLine{
				LineID:           l.LineID,
				AccountID:        l.AccountID,
				EntryID:          e.EntryID,
				EntryNumber:      e.EntryNumber,
				EntryDate:        e.EntryDate,
				Reference:        e.Reference,
				EntryDescription: e.Description,
				LineDescription:  l.Description,
				DebitAmount:      l.DebitAmount,
				CreditAmount:     l.CreditAmount,
			}, nil
		}
	}
	return nil, apperrors.NewNotFoundError("journal line", lineID)
}
