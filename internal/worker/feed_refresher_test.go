package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
)

type refreshCounter struct {
	calls atomic.Int32
	err   error
}

func (r *refreshCounter) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

type failingSubscriber struct{}

func (failingSubscriber) Subscribe(context.Context) (<-chan model.Order, error) {
	return nil, errors.New("redis unavailable")
}

func waitForCalls(t *testing.T, r *refreshCounter, want int32) {
	t.Helper()
	deadline := time.After(time.Second)
	for r.calls.Load() < want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d refreshes, got %d", want, r.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewFeedRefresherDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := NewFeedRefresher(&refreshCounter{}, feed.NewMemoryBroker(), 0, logger)
	if r.pollInterval != 30*time.Second {
		t.Fatalf("expected default interval, got %s", r.pollInterval)
	}
}

func TestFeedRefresherRefreshesOnStartAndOnEvents(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dataset := &refreshCounter{}
	broker := feed.NewMemoryBroker()
	r := NewFeedRefresher(dataset, broker, time.Hour, logger)

	r.Start(context.Background())
	defer r.Stop()
	waitForCalls(t, dataset, 1)

	if err := broker.Publish(context.Background(), model.Order{Code: "26HC0001"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitForCalls(t, dataset, 2)
}

func TestFeedRefresherPollsWithoutBroker(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dataset := &refreshCounter{err: errors.New("db down")}
	r := NewFeedRefresher(dataset, failingSubscriber{}, 10*time.Millisecond, logger)

	r.Start(context.Background())
	waitForCalls(t, dataset, 3)
	r.Stop()

	after := dataset.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if dataset.calls.Load() != after {
		t.Fatal("refresher kept running after stop")
	}
}

func TestFeedRefresherStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := NewFeedRefresher(&refreshCounter{}, feed.NewMemoryBroker(), time.Hour, logger)
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}
