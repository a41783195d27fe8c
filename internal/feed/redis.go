package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// DefaultChannel is the pub/sub channel committed orders are announced on.
const DefaultChannel = "restomart:orders"

// RedisBroker announces orders through Redis pub/sub so every instance refreshes its feed.
type RedisBroker struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisBroker constructs RedisBroker.
func NewRedisBroker(client *redis.Client, channel string, logger *slog.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{client: client, channel: channel, logger: logger}
}

// Publish sends order as JSON on the channel.
func (b *RedisBroker) Publish(ctx context.Context, order model.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Subscribe listens on the channel until ctx is done.
func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan model.Order, error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	out := make(chan model.Order, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var order model.Order
				if err := json.Unmarshal([]byte(msg.Payload), &order); err != nil {
					b.logger.Warn("drop malformed order event", slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- order:
				default:
				}
			}
		}
	}()
	return out, nil
}
