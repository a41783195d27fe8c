package feed

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// OrderSource loads the orders the dataset mirrors.
type OrderSource interface {
	Today(ctx context.Context) ([]model.Order, error)
}

// Snapshot is the state of the dataset at one point in time.
// Orders is shared between subscribers and must not be modified.
type Snapshot struct {
	Orders    []model.Order
	Loading   bool
	Err       error
	UpdatedAt time.Time
}

// Dataset is the single owner of the day's orders and their loading and error state.
// Every refresh is pushed to all subscribers, whatever triggered it.
type Dataset struct {
	source OrderSource
	now    func() time.Time

	refreshMu sync.Mutex

	mu     sync.Mutex
	snap   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

// NewDataset constructs a Dataset that starts in the loading state.
func NewDataset(source OrderSource) *Dataset {
	return &Dataset{
		source: source,
		now:    time.Now,
		snap:   Snapshot{Loading: true},
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state.
func (d *Dataset) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Subscribe registers fn and immediately calls it with the current state.
// fn must not block; it runs on the goroutine that refreshed the dataset.
func (d *Dataset) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = fn
	snap := d.snap
	d.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (d *Dataset) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Refresh reloads the orders. A failed load keeps the previous orders and records the error.
func (d *Dataset) Refresh(ctx context.Context) error {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	d.update(func(s *Snapshot) { s.Loading = true })

	orders, err := d.source.Today(ctx)

	d.update(func(s *Snapshot) {
		s.Loading = false
		s.Err = err
		if err == nil {
			s.Orders = orders
			s.UpdatedAt = d.now()
		}
	})
	return err
}

func (d *Dataset) update(mutate func(*Snapshot)) {
	d.mu.Lock()
	mutate(&d.snap)
	snap := d.snap
	subs := make([]func(Snapshot), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
