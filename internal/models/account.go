package models

import "github.com/shopspring/decimal"

// Account holds the balances owned by a single client. Total is derived,
// never stored. Once Locked is set it stays set for the rest of the run;
// there is no unlock event.
type Account struct {
	ID        ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(id ClientID) Account {
	return Account{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is the sum of available and held funds.
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}
