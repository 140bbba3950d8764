package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	defer s.read(ctx)()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	defer s.read(ctx)()

	id, ok := s.accountCodes[code]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", code)
	}
	a := s.accounts[id]
	return &a, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	defer s.read(ctx)()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	defer s.read(ctx)()

	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		if filter.AccountType != "" && a.AccountType != filter.AccountType {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	defer s.write(ctx)()

	if _, exists := s.accountCodes[account.Code]; exists {
		return apperrors.ErrDuplicate
	}
	if _, exists := s.accounts[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = account
	s.accountCodes[account.Code] = account.AccountID
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	defer s.write(ctx)()

	current, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account", account.AccountID)
	}
	current.Name = account.Name
	current.Description = account.Description
	current.ParentAccountID = account.ParentAccountID
	current.LastUpdatedAt = account.LastUpdatedAt
	current.LastUpdatedBy = account.LastUpdatedBy
	s.accounts[account.AccountID] = current
	return nil
}

func (s *Store) SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error {
	defer s.write(ctx)()

	a, ok := s.accounts[accountID]
	if !ok {
		return apperrors.NewNotFoundError("account", accountID)
	}
	a.IsActive = active
	a.Touch(now, userID)
	s.accounts[accountID] = a
	return nil
}
