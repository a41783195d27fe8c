// Package redisstore builds the shared Redis client used by the live feed
// broker and the order code counter.
package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
}

// NewClient returns nil when no address is configured so that consumers can
// fall back to in-process implementations.
func NewClient(opts Options) *redis.Client {
	if opts.Address == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// Ping verifies the server is reachable.
func Ping(ctx context.Context, client *redis.Client, logger *slog.Logger) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", client.Options().Addr, err)
	}
	logger.Info("redis connected", slog.String("addr", client.Options().Addr))
	return nil
}
