package ledger

import (
	"context"
	"sync"
	"testing"

	interfaces "github.com/sheikh-saqib/payments-accounting-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/models/events"
	"github.com/sheikh-saqib/payments-accounting-engine/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher captures published events in memory.
type recordingPublisher struct {
	mu        sync.Mutex
	published map[string][]any
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(map[string][]any)}
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[topic] = append(p.published[topic], event)
	return nil
}

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published[topic])
}

// panicStore panics on the first Insert for a chosen client, simulating an
// internal fault inside that client's unit.
type panicStore struct {
	interfaces.TransactionStore
	faultClient models.ClientID
}

func (s *panicStore) Insert(ctx context.Context, tx models.Transaction) error {
	if tx.Client == s.faultClient {
		panic("store fault")
	}
	return s.TransactionStore.Insert(ctx, tx)
}

func TestPublisherSeesRejectionsAndSettlements(t *testing.T) {
	pub := newRecordingPublisher()
	engine := NewEngine(memory.NewMemoryTransactionStore(), zap.NewNop(), pub)
	ctx := context.Background()

	engine.Submit(ctx, models.Deposit(0, 0, dec("1")))
	engine.Submit(ctx, models.Withdrawal(0, 1, dec("5"))) // rejected: insufficient funds
	engine.Submit(ctx, models.Dispute(0, 7))              // rejected: not found
	engine.Submit(ctx, models.Deposit(1, 2, dec("2")))

	result := engine.Drain(ctx)

	// Outcomes are identical with publishing enabled.
	assertAccount(t, result[0], "1", "0", false)
	assertAccount(t, result[1], "2", "0", false)

	assert.Equal(t, 2, pub.count(events.TopicEventRejected))
	assert.Equal(t, 2, pub.count(events.TopicAccountSettled))

	rejected, ok := pub.published[events.TopicEventRejected][0].(events.EventRejected)
	require.True(t, ok)
	assert.NotEmpty(t, rejected.EventID)
	assert.Equal(t, ErrInsufficientFunds.Error(), rejected.Reason)
}

func TestFaultedUnitIsOmittedFromSnapshot(t *testing.T) {
	store := &panicStore{
		TransactionStore: memory.NewMemoryTransactionStore(),
		faultClient:      2,
	}
	engine := NewEngine(store, zap.NewNop(), nil)
	ctx := context.Background()

	engine.Submit(ctx, models.Deposit(1, 0, dec("1")))
	engine.Submit(ctx, models.Deposit(2, 1, dec("9")))
	engine.Submit(ctx, models.Deposit(3, 2, dec("4")))

	result := engine.Drain(ctx)

	// The faulted client yields no result; the others are unaffected.
	require.Len(t, result, 2)
	assertAccount(t, result[1], "1", "0", false)
	assertAccount(t, result[3], "4", "0", false)
	_, exists := result[2]
	assert.False(t, exists)
}

func TestFaultedUnitDoesNotBlockRouter(t *testing.T) {
	store := &panicStore{
		TransactionStore: memory.NewMemoryTransactionStore(),
		faultClient:      2,
	}
	engine := NewEngine(store, zap.NewNop(), nil)
	ctx := context.Background()

	engine.Submit(ctx, models.Deposit(2, 0, dec("1")))

	// Well past the queue depth: every event for the dead unit must be
	// swallowed without blocking the producer.
	for i := 1; i <= 2*queueDepth; i++ {
		engine.Submit(ctx, models.Deposit(2, models.TxID(i), dec("1")))
	}
	engine.Submit(ctx, models.Deposit(1, 5000, dec("3")))

	result := engine.Drain(ctx)
	require.Len(t, result, 1)
	assertAccount(t, result[1], "3", "0", false)
}
