package interfaces

import "context"

// EventPublisher pushes engine events to an external broker. Publishing is
// diagnostic only: the engine never lets a publish failure change which
// events are accepted or rejected.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
