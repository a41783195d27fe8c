package ordercode

import (
	"context"
	"fmt"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// Counter hands out increasing numbers per key.
type Counter interface {
	Next(ctx context.Context, key string) (int64, error)
}

// CounterGenerator builds codes from a per-key counter.
type CounterGenerator struct {
	counter Counter
}

// NewCounterGenerator constructs CounterGenerator.
func NewCounterGenerator(counter Counter) *CounterGenerator {
	return &CounterGenerator{counter: counter}
}

// Generate allocates the next code for key.
func (g *CounterGenerator) Generate(ctx context.Context, key model.OrderCodeKey) (string, error) {
	seq, err := g.counter.Next(ctx, CounterKey(key))
	if err != nil {
		return "", fmt.Errorf("next order code: %w", err)
	}
	return Format(key, seq), nil
}
