package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CustomerReader defines read operations for customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error)
	// ListCustomers returns customers ordered by code.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customers.
type CustomerWriter interface {
	// SaveCustomer persists a new customer. A taken code yields apperrors.ErrDuplicate.
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
