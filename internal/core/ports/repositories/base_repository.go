package repositories

import (
	"context"
)

// TransactionManager runs a unit of work against the store atomically.
type TransactionManager interface {
	// WithinTx runs fn inside a single store transaction. Repository calls made
	// with the context handed to fn join that transaction. The transaction commits
	// when fn returns nil and rolls back otherwise. Nested calls reuse the outer
	// transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
