package ordercode

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "restomart:ordercode:"

// RedisCounter keeps order code sequences in Redis with INCR.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter constructs RedisCounter.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Next increments and returns the counter of key.
func (c *RedisCounter) Next(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, redisKeyPrefix+key).Result()
}
