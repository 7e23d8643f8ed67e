package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicAccountSettled carries one final balance snapshot per client.
const TopicAccountSettled = "account_settled"

type AccountSettled struct {
	EventID    string          `json:"event_id"`
	Client     uint16          `json:"client"`
	Available  decimal.Decimal `json:"available"`
	Held       decimal.Decimal `json:"held"`
	Total      decimal.Decimal `json:"total"`
	Locked     bool            `json:"locked"`
	OccurredAt time.Time       `json:"occurred_at"`
}
