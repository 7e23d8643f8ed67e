package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
)

// MemoryTransactionStore is the in-memory implementation of
// interfaces.TransactionStore. A single RWMutex guards the map; account
// units are partitioned by client, so writers never race on the same key
// and the coarse lock sees effectively no contention.
type MemoryTransactionStore struct {
	mu           sync.RWMutex
	transactions map[models.TxID]models.Transaction
}

// NewMemoryTransactionStore creates and returns a new empty store instance.
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make(map[models.TxID]models.Transaction), // initialize the empty transaction table
	}
}

// Insert adds a transaction if its id is not already taken.
// Implements the TransactionStore interface.
func (m *MemoryTransactionStore) Insert(ctx context.Context, tx models.Transaction) error {
	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	if _, exists := m.transactions[tx.ID]; exists {
		return interfaces.ErrDuplicateTransaction // ids are never overwritten
	}
	m.transactions[tx.ID] = tx
	return nil
}

// Get returns the transaction stored under id.
func (m *MemoryTransactionStore) Get(ctx context.Context, id models.TxID) (models.Transaction, error) {
	m.mu.RLock()         // readers share the lock
	defer m.mu.RUnlock() // unlock automatically at the end

	tx, exists := m.transactions[id]
	if !exists {
		return models.Transaction{}, interfaces.ErrTransactionNotFound
	}
	return tx, nil // value copy, so callers can't mutate internal state
}

// SetDisputed flips the disputed flag on an existing transaction.
func (m *MemoryTransactionStore) SetDisputed(ctx context.Context, id models.TxID, disputed bool) error {
	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	tx, exists := m.transactions[id]
	if !exists {
		return interfaces.ErrTransactionNotFound
	}
	tx.Disputed = disputed
	m.transactions[id] = tx // write the updated copy back
	return nil
}

// Remove deletes the transaction stored under id.
func (m *MemoryTransactionStore) Remove(ctx context.Context, id models.TxID) error {
	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	if _, exists := m.transactions[id]; !exists {
		return interfaces.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

// Len reports how many transactions the store currently holds.
func (m *MemoryTransactionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// Compile-time check: ensure MemoryTransactionStore implements TransactionStore
var _ interfaces.TransactionStore = (*MemoryTransactionStore)(nil)
