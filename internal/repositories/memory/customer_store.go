package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	defer s.read(ctx)()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("customer", customerID)
	}
	return &c, nil
}

func (s *Store) FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	defer s.read(ctx)()

	id, ok := s.customerCodes[code]
	if !ok {
		return nil, apperrors.NewNotFoundError("customer", code)
	}
	c := s.customers[id]
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	defer s.read(ctx)()

	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	defer s.write(ctx)()

	if _, exists := s.customerCodes[customer.Code]; exists {
		return apperrors.ErrDuplicate
	}
	s.customers[customer.CustomerID] = customer
	s.customerCodes[customer.Code] = customer.CustomerID
	return nil
}
