package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// Refreshable is a dataset that can reload itself.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// OrderSubscriber delivers committed orders.
type OrderSubscriber interface {
	Subscribe(ctx context.Context) (<-chan model.Order, error)
}

// FeedRefresher keeps the day's orders current: it reloads on every committed
// order and on a fixed interval, which also covers the midnight rollover.
type FeedRefresher struct {
	dataset      Refreshable
	broker       OrderSubscriber
	pollInterval time.Duration
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewFeedRefresher constructs the refresher.
func NewFeedRefresher(dataset Refreshable, broker OrderSubscriber, pollInterval time.Duration, logger *slog.Logger) *FeedRefresher {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &FeedRefresher{
		dataset:      dataset,
		broker:       broker,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Start launches background refreshing.
func (r *FeedRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	events, err := r.broker.Subscribe(runCtx)
	if err != nil {
		r.logger.Warn("order events unavailable, polling only", slog.String("error", err.Error()))
		events = nil
	}

	r.wg.Add(1)
	go r.run(runCtx, events)
}

// Stop waits for the refresher to finish.
func (r *FeedRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *FeedRefresher) run(ctx context.Context, events <-chan model.Order) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		case order, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			r.logger.Debug("order event received", slog.String("code", order.Code))
			drain(events)
			r.refresh(ctx)
		}
	}
}

// drain discards queued events so a burst triggers a single reload.
func drain(events <-chan model.Order) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (r *FeedRefresher) refresh(ctx context.Context) {
	if err := r.dataset.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("refresh day feed failed", slog.String("error", err.Error()))
	}
}
