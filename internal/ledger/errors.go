package ledger

import "errors"

var (
	// ErrAccountFrozen rejects every event addressed to a locked account.
	ErrAccountFrozen = errors.New("account frozen")
	// ErrInsufficientFunds rejects a withdrawal larger than the available
	// balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount rejects deposits and withdrawals with a non-positive
	// amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrTransactionDisputed rejects a dispute against a transaction that is
	// already under dispute.
	ErrTransactionDisputed = errors.New("transaction already disputed")
	// ErrTransactionNotDisputed rejects a resolve or chargeback against a
	// transaction that is not under dispute.
	ErrTransactionNotDisputed = errors.New("transaction not disputed")
	// ErrClientMismatch rejects a dispute, resolve or chargeback whose
	// claimed client does not own the referenced transaction. Routing makes
	// this unreachable in practice; the unit still checks it.
	ErrClientMismatch = errors.New("transaction belongs to a different client")
)
