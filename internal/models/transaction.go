package models

import "github.com/shopspring/decimal"

// ClientID identifies an account holder. The first event referencing a
// client implicitly creates its account.
type ClientID uint16

// TxID identifies a transaction. IDs are globally unique across all clients;
// reusing one is an error, never an overwrite.
type TxID uint32

// Transaction is a ledger row created by an accepted deposit or withdrawal.
// The amount is stored signed: deposits positive, withdrawals negated on
// insert, so dispute bookkeeping can move the stored amount between available
// and held uniformly for both kinds.
type Transaction struct {
	ID       TxID
	Client   ClientID
	Amount   decimal.Decimal
	Disputed bool
}
