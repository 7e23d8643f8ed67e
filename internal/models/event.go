package models

import "github.com/shopspring/decimal"

// EventType discriminates the event variants flowing through the engine.
type EventType string

const (
	EventDeposit    EventType = "deposit"
	EventWithdrawal EventType = "withdrawal"
	EventDispute    EventType = "dispute"
	EventResolve    EventType = "resolve"
	EventChargeback EventType = "chargeback"
)

// Event is a single instruction addressed to one client. Every variant
// carries the same (Client, Tx) addressing; Amount is meaningful only for
// deposits and withdrawals. Held marks a deposit that arrives already under
// dispute, crediting held instead of available.
type Event struct {
	Type   EventType
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
	Held   bool
}

// Deposit builds a deposit event.
func Deposit(client ClientID, tx TxID, amount decimal.Decimal) Event {
	return Event{Type: EventDeposit, Client: client, Tx: tx, Amount: amount}
}

// HeldDeposit builds a deposit that arrives pre-disputed.
func HeldDeposit(client ClientID, tx TxID, amount decimal.Decimal) Event {
	return Event{Type: EventDeposit, Client: client, Tx: tx, Amount: amount, Held: true}
}

// Withdrawal builds a withdrawal event.
func Withdrawal(client ClientID, tx TxID, amount decimal.Decimal) Event {
	return Event{Type: EventWithdrawal, Client: client, Tx: tx, Amount: amount}
}

// Dispute builds a dispute event referencing an earlier transaction.
func Dispute(client ClientID, tx TxID) Event {
	return Event{Type: EventDispute, Client: client, Tx: tx}
}

// Resolve builds a resolve event referencing a disputed transaction.
func Resolve(client ClientID, tx TxID) Event {
	return Event{Type: EventResolve, Client: client, Tx: tx}
}

// Chargeback builds a chargeback event referencing a disputed transaction.
func Chargeback(client ClientID, tx TxID) Event {
	return Event{Type: EventChargeback, Client: client, Tx: tx}
}
