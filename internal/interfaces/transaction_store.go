package interfaces

import (
	"context"
	"errors"

	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
)

var (
	// ErrDuplicateTransaction is returned by Insert when the transaction id
	// is already present in the store.
	ErrDuplicateTransaction = errors.New("transaction already exists")
	// ErrTransactionNotFound is returned when a referenced transaction id
	// has no row in the store.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionStore is the shared table of accepted transactions, keyed by
// transaction id. It must be safe for concurrent use; in practice access is
// partitioned by client, so writers never contend on the same key.
type TransactionStore interface {
	// Insert adds a transaction if its id is absent, returning
	// ErrDuplicateTransaction otherwise.
	Insert(ctx context.Context, tx models.Transaction) error
	// Get returns the transaction with the given id, or
	// ErrTransactionNotFound.
	Get(ctx context.Context, id models.TxID) (models.Transaction, error)
	// SetDisputed flips the disputed flag on an existing transaction.
	SetDisputed(ctx context.Context, id models.TxID, disputed bool) error
	// Remove deletes the transaction with the given id.
	Remove(ctx context.Context, id models.TxID) error
}
