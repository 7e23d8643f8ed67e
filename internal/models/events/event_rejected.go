package events

import "time"

// TopicEventRejected carries per-event rejections for diagnostics.
const TopicEventRejected = "event_rejected"

type EventRejected struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Client     uint16    `json:"client"`
	Tx         uint32    `json:"tx"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
