package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
)

// uniqueViolation is the postgres error code for duplicate primary keys.
const uniqueViolation = "23505"

// PostgresTransactionStore backs the transaction table with postgres.
// The engine's access pattern is identical to the memory store; row-level
// locking in postgres covers the (structurally absent) cross-client races.
type PostgresTransactionStore struct {
	db *sql.DB
}

func NewPostgresTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{
		db: db,
	}
}

// EnsureSchema creates the transactions table when it does not exist yet.
func (p *PostgresTransactionStore) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS transactions (
		id BIGINT PRIMARY KEY,
		client BIGINT NOT NULL,
		amount NUMERIC NOT NULL,
		disputed BOOLEAN NOT NULL DEFAULT FALSE
	)`

	_, err := p.db.ExecContext(ctx, query)
	return err
}

func (p *PostgresTransactionStore) Insert(ctx context.Context, tx models.Transaction) error {
	const query = `INSERT INTO transactions (id, client, amount, disputed)
	VALUES ($1, $2, $3, $4)`

	_, err := p.db.ExecContext(ctx, query, int64(tx.ID), int64(tx.Client), tx.Amount, tx.Disputed)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return interfaces.ErrDuplicateTransaction
	}
	return err
}

func (p *PostgresTransactionStore) Get(ctx context.Context, id models.TxID) (models.Transaction, error) {
	const query = `SELECT id, client, amount, disputed FROM transactions WHERE id = $1`

	var (
		txID   int64
		client int64
		tx     models.Transaction
	)
	err := p.db.QueryRowContext(ctx, query, int64(id)).Scan(&txID, &client, &tx.Amount, &tx.Disputed)

	if err == sql.ErrNoRows {
		return models.Transaction{}, interfaces.ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}

	tx.ID = models.TxID(txID)
	tx.Client = models.ClientID(client)
	return tx, nil
}

func (p *PostgresTransactionStore) SetDisputed(ctx context.Context, id models.TxID, disputed bool) error {
	const query = `UPDATE transactions SET disputed = $2 WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, int64(id), disputed)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return interfaces.ErrTransactionNotFound
	}
	return nil
}

func (p *PostgresTransactionStore) Remove(ctx context.Context, id models.TxID) error {
	const query = `DELETE FROM transactions WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, int64(id))
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return interfaces.ErrTransactionNotFound
	}
	return nil
}

var _ interfaces.TransactionStore = (*PostgresTransactionStore)(nil)
