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

// queueDepth bounds each unit's private event queue. The engine is the only
// producer and blocks when a queue is full, which preserves per-client FIFO.
const queueDepth = 256

// accountUnit owns exactly one account. It consumes events from its private
// queue strictly in arrival order and mutates only store rows belonging to
// its own client. Balances are never shared, so they need no locking.
type accountUnit struct {
	acct      models.Account
	store     interfaces.TransactionStore
	queue     chan models.Event
	done      chan models.Account
	logger    *zap.Logger
	publisher interfaces.EventPublisher
}

func newAccountUnit(client models.ClientID, store interfaces.TransactionStore, logger *zap.Logger, publisher interfaces.EventPublisher) *accountUnit {
	return &accountUnit{
		acct:      models.NewAccount(client),
		store:     store,
		queue:     make(chan models.Event, queueDepth),
		done:      make(chan models.Account, 1),
		logger:    logger,
		publisher: publisher,
	}
}

// run drains the queue until it is closed, then yields the final account on
// the done channel. A panic is recovered so one faulting unit never takes
// down the run; done is then closed without a value and the engine omits
// this client from the snapshot.
func (u *accountUnit) run(ctx context.Context) {
	defer close(u.done)
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("account unit fault",
				zap.Uint16("client", uint16(u.acct.ID)),
				zap.Any("panic", r),
			)
			// Keep consuming until the engine closes the queue so the
			// single producer never blocks on a dead unit. The discarded
			// events are the swallowed forwarding failures of a unit
			// that can no longer accept input.
			for range u.queue {
			}
		}
	}()

	for ev := range u.queue {
		if err := u.apply(ctx, ev); err != nil {
			u.reject(ctx, ev, err)
		}
	}
	u.done <- u.acct
}

// apply runs one event through the state machine. Errors are local to the
// event: apart from the documented deposit insert-then-validate ordering,
// a rejected event leaves no mutation behind.
func (u *accountUnit) apply(ctx context.Context, ev models.Event) error {
	if u.acct.Locked {
		return ErrAccountFrozen
	}

	switch ev.Type {
	case models.EventDeposit:
		return u.deposit(ctx, ev)
	case models.EventWithdrawal:
		return u.withdraw(ctx, ev)
	case models.EventDispute:
		return u.dispute(ctx, ev)
	case models.EventResolve:
		return u.resolve(ctx, ev)
	case models.EventChargeback:
		return u.chargeback(ctx, ev)
	}
	return nil
}

// deposit inserts before validating the amount, so a duplicate id always
// reports as a duplicate even when the amount is also invalid. The inserted
// row remains when the amount check fails; this ordering matches the
// documented first-check-wins contract. A pre-held deposit is stored
// already disputed: it can be resolved or charged back but not disputed
// again.
func (u *accountUnit) deposit(ctx context.Context, ev models.Event) error {
	if err := u.store.Insert(ctx, models.Transaction{
		ID:       ev.Tx,
		Client:   ev.Client,
		Amount:   ev.Amount,
		Disputed: ev.Held,
	}); err != nil {
		return err
	}
	if !ev.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if ev.Held {
		u.acct.Held = u.acct.Held.Add(ev.Amount)
	} else {
		u.acct.Available = u.acct.Available.Add(ev.Amount)
	}
	return nil
}

// withdraw stores the negated amount, so disputes against withdrawals move
// a negative amount between available and held and reverse the debit.
func (u *accountUnit) withdraw(ctx context.Context, ev models.Event) error {
	if u.acct.Available.LessThan(ev.Amount) {
		return ErrInsufficientFunds
	}
	if !ev.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	stored := ev.Amount.Neg()
	if err := u.store.Insert(ctx, models.Transaction{
		ID:     ev.Tx,
		Client: ev.Client,
		Amount: stored,
	}); err != nil {
		return err
	}

	u.acct.Available = u.acct.Available.Add(stored)
	return nil
}

func (u *accountUnit) dispute(ctx context.Context, ev models.Event) error {
	tx, err := u.store.Get(ctx, ev.Tx)
	if err != nil {
		return err
	}
	if tx.Disputed {
		return ErrTransactionDisputed
	}
	if tx.Client != u.acct.ID {
		return ErrClientMismatch
	}

	if err := u.store.SetDisputed(ctx, ev.Tx, true); err != nil {
		return err
	}
	u.acct.Available = u.acct.Available.Sub(tx.Amount)
	u.acct.Held = u.acct.Held.Add(tx.Amount)
	return nil
}

func (u *accountUnit) resolve(ctx context.Context, ev models.Event) error {
	tx, err := u.store.Get(ctx, ev.Tx)
	if err != nil {
		return err
	}
	if !tx.Disputed {
		return ErrTransactionNotDisputed
	}
	if tx.Client != u.acct.ID {
		return ErrClientMismatch
	}

	if err := u.store.SetDisputed(ctx, ev.Tx, false); err != nil {
		return err
	}
	u.acct.Available = u.acct.Available.Add(tx.Amount)
	u.acct.Held = u.acct.Held.Sub(tx.Amount)
	return nil
}

// chargeback consumes the disputed row: the held amount is written off, the
// account locks permanently and the transaction can never be disputed again.
func (u *accountUnit) chargeback(ctx context.Context, ev models.Event) error {
	tx, err := u.store.Get(ctx, ev.Tx)
	if err != nil {
		return err
	}
	if !tx.Disputed {
		return ErrTransactionNotDisputed
	}
	if tx.Client != u.acct.ID {
		return ErrClientMismatch
	}

	u.acct.Held = u.acct.Held.Sub(tx.Amount)
	u.acct.Locked = true
	return u.store.Remove(ctx, ev.Tx)
}

// reject records a per-event failure without affecting the run. Outcomes are
// identical whether or not a publisher is configured.
func (u *accountUnit) reject(ctx context.Context, ev models.Event, err error) {
	u.logger.Debug("event rejected",
		zap.String("type", string(ev.Type)),
		zap.Uint16("client", uint16(ev.Client)),
		zap.Uint32("tx", uint32(ev.Tx)),
		zap.Error(err),
	)
	if u.publisher == nil {
		return
	}

	payload := events.EventRejected{
		EventID:    uuid.New().String(),
		Type:       string(ev.Type),
		Client:     uint16(ev.Client),
		Tx:         uint32(ev.Tx),
		Reason:     err.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if perr := u.publisher.Publish(ctx, events.TopicEventRejected, payload); perr != nil {
		u.logger.Warn("publish rejected event", zap.Error(perr))
	}
}
