package feed

import (
	"context"
	"sync"

	"github.com/polkiloo/restomart/internal/domain/model"
)

const subscriberBuffer = 16

// Broker fans committed orders out to feed refreshers.
type Broker interface {
	Publish(ctx context.Context, order model.Order) error
	Subscribe(ctx context.Context) (<-chan model.Order, error)
}

// MemoryBroker delivers orders to subscribers of the same process.
// Slow subscribers miss messages instead of blocking publishers.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[chan model.Order]struct{}
}

// NewMemoryBroker constructs MemoryBroker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[chan model.Order]struct{})}
}

// Publish offers order to every subscriber.
func (b *MemoryBroker) Publish(_ context.Context, order model.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- order:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel closed when ctx is done.
func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan model.Order, error) {
	ch := make(chan model.Order, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}
