package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	defer s.read(ctx)()

	a, ok := s.bankAccounts[bankAccountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("bank account", bankAccountID)
	}
	return &a, nil
}

func (s *Store) ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error) {
	defer s.read(ctx)()

	out := make([]domain.BankAccount, 0, len(s.bankAccounts))
	for _, a := range s.bankAccounts {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountName != out[j].AccountName {
			return out[i].AccountName < out[j].AccountName
		}
		return out[i].BankAccountID < out[j].BankAccountID
	})
	return out, nil
}

func (s *Store) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	defer s.write(ctx)()

	if _, exists := s.bankAccounts[account.BankAccountID]; exists {
		return apperrors.ErrDuplicate
	}
	s.bankAccounts[account.BankAccountID] = account
	return nil
}

func (s *Store) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	defer s.write(ctx)()

	if _, ok := s.bankAccounts[account.BankAccountID]; !ok {
		return apperrors.NewNotFoundError("bank account", account.BankAccountID)
	}
	s.bankAccounts[account.BankAccountID] = account
	return nil
}

func (s *Store) FindStatementLineByID(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error) {
	defer s.read(ctx)()

	l, ok := s.statementLines[statementLineID]
	if !ok {
		return nil, apperrors.NewNotFoundError("bank statement", statementLineID)
	}
	return &l, nil
}

// FindStatementLineForUpdate needs no extra locking: a transaction already holds the store lock.
func (s *Store) FindStatementLineForUpdate(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error) {
	return s.FindStatementLineByID(ctx, statementLineID)
}

func (s *Store) ListStatementLines(ctx context.Context, filter domain.StatementLineFilter) ([]domain.BankStatementLine, error) {
	defer s.read(ctx)()

	out := make([]domain.BankStatementLine, 0)
	for _, l := range s.statementLines {
		if filter.BankAccountID != "" && l.BankAccountID != filter.BankAccountID {
			continue
		}
		if filter.UnreconciledOnly && l.IsReconciled {
			continue
		}
		if !withinDates(l.StatementDate, filter.From, filter.To) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.Before(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.StatementLineID < b.StatementLineID
	})
	return out, nil
}

func (s *Store) SumReconciled(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	defer s.read(ctx)()

	sum := decimal.Zero
	for _, l := range s.statementLines {
		if l.BankAccountID == bankAccountID && l.IsReconciled {
			sum = sum.Add(l.NetAmount())
		}
	}
	return sum, nil
}

func (s *Store) CountUnreconciled(ctx context.Context, bankAccountID string) (int, error) {
	defer s.read(ctx)()

	n := 0
	for _, l := range s.statementLines {
		if l.BankAccountID == bankAccountID && !l.IsReconciled {
			n++
		}
	}
	return n, nil
}

func (s *Store) IsJournalLineMatched(ctx context.Context, journalLineID string) (bool, error) {
	defer s.read(ctx)()

	for _, l := range s.statementLines {
		if l.IsReconciled && l.MatchedLineID == journalLineID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SaveStatementLines(ctx context.Context, lines []domain.BankStatementLine) error {
	defer s.write(ctx)()

	for _, l := range lines {
		if _, exists := s.statementLines[l.StatementLineID]; exists {
			return apperrors.ErrDuplicate
		}
	}
	for _, l := range lines {
		s.statementLines[l.StatementLineID] = l
	}
	return nil
}

func (s *Store) UpdateStatementMatch(ctx context.Context, line domain.BankStatementLine) error {
	defer s.write(ctx)()

	existing, ok := s.statementLines[line.StatementLineID]
	if !ok {
		return apperrors.NewNotFoundError("bank statement", line.StatementLineID)
	}
	existing.IsReconciled = line.IsReconciled
	existing.MatchedLineID = line.MatchedLineID
	existing.AuditFields.Touch(line.LastUpdatedAt, line.LastUpdatedBy)
	s.statementLines[line.StatementLineID] = existing
	return nil
}
