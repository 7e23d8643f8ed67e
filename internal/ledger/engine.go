package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models/events"
	"go.uber.org/zap"
)

// Engine routes events to per-client account units. Each unit runs on its
// own goroutine with a private FIFO queue, so events for one client are
// processed in submission order while clients proceed in parallel. Units are
// created lazily on first sight of a client.
//
// The engine is a single-producer structure: Submit must be called from one
// goroutine, and Drain exactly once after the last Submit.
type Engine struct {
	store     interfaces.TransactionStore
	logger    *zap.Logger
	publisher interfaces.EventPublisher
	units     map[models.ClientID]*accountUnit
}

// NewEngine creates an engine over the given transaction store. logger may
// be nil; publisher may be nil to disable event publishing.
func NewEngine(store interfaces.TransactionStore, logger *zap.Logger, publisher interfaces.EventPublisher) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:     store,
		logger:    logger,
		publisher: publisher,
		units:     make(map[models.ClientID]*accountUnit),
	}
}

// Submit forwards an event to its client's unit, starting the unit if this
// is the first event for that client. It blocks only when the unit's queue
// is full.
func (e *Engine) Submit(ctx context.Context, ev models.Event) {
	unit, exists := e.units[ev.Client]
	if !exists {
		unit = newAccountUnit(ev.Client, e.store, e.logger, e.publisher)
		e.units[ev.Client] = unit
		go unit.run(ctx)
	}
	unit.queue <- ev
}

// Drain signals end of input to every unit, waits for all of them to finish
// and collects the final account states. A unit that faulted yields no
// result; its client is omitted rather than failing the run.
func (e *Engine) Drain(ctx context.Context) map[models.ClientID]models.Account {
	for _, unit := range e.units {
		close(unit.queue)
	}

	result := make(map[models.ClientID]models.Account, len(e.units))
	for client, unit := range e.units {
		acct, ok := <-unit.done
		if !ok {
			e.logger.Warn("no result for client", zap.Uint16("client", uint16(client)))
			continue
		}
		result[acct.ID] = acct
		e.settle(ctx, acct)
	}

	e.units = make(map[models.ClientID]*accountUnit)
	return result
}

func (e *Engine) settle(ctx context.Context, acct models.Account) {
	if e.publisher == nil {
		return
	}

	payload := events.AccountSettled{
		EventID:    uuid.New().String(),
		Client:     uint16(acct.ID),
		Available:  acct.Available,
		Held:       acct.Held,
		Total:      acct.Total(),
		Locked:     acct.Locked,
		OccurredAt: time.Now().UTC(),
	}
	if err := e.publisher.Publish(ctx, events.TopicAccountSettled, payload); err != nil {
		e.logger.Warn("publish settled account", zap.Error(err))
	}
}
