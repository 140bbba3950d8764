package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func (s *Store) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	defer s.read(ctx)()

	c, ok := s.currencies[currencyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency", currencyID)
	}
	return &c, nil
}

func (s *Store) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	defer s.read(ctx)()

	id, ok := s.currencyCodes[code]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency", code)
	}
	c := s.currencies[id]
	return &c, nil
}

func (s *Store) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	defer s.read(ctx)()

	for _, c := range s.currencies {
		if c.IsBase {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("currency", "base")
}

func (s *Store) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	defer s.read(ctx)()

	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	defer s.write(ctx)()

	if _, exists := s.currencyCodes[currency.Code]; exists {
		return apperrors.ErrDuplicate
	}
	s.currencies[currency.CurrencyID] = currency
	s.currencyCodes[currency.Code] = currency.CurrencyID
	return nil
}

func (s *Store) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	defer s.write(ctx)()

	existing, ok := s.currencies[currency.CurrencyID]
	if !ok {
		return apperrors.NewNotFoundError("currency", currency.CurrencyID)
	}
	currency.Code = existing.Code
	currency.AuditFields.CreatedAt = existing.CreatedAt
	currency.AuditFields.CreatedBy = existing.CreatedBy
	s.currencies[currency.CurrencyID] = currency
	return nil
}
