package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically. Repository calls made
// with the ctx passed to fn join the same transaction; calls made with any
// other ctx run outside it.
type TransactionManager interface {
	// WithinTx runs fn in a transaction that commits when fn returns nil
	// and rolls back otherwise. Nested calls reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
