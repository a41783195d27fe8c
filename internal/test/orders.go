package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// CodeGeneratorStub returns sequential codes or a configured error.
type CodeGeneratorStub struct {
	GenerateFn func(context.Context, model.OrderCodeKey) (string, error)

	mu   sync.Mutex
	Keys []model.OrderCodeKey
}

// Generate records the key and returns the next code.
func (s *CodeGeneratorStub) Generate(ctx context.Context, key model.OrderCodeKey) (string, error) {
	s.mu.Lock()
	s.Keys = append(s.Keys, key)
	n := len(s.Keys)
	s.mu.Unlock()
	if s.GenerateFn != nil {
		return s.GenerateFn(ctx, key)
	}
	return fmt.Sprintf("CODE%04d", n), nil
}

// PublisherStub records published orders.
type PublisherStub struct {
	Err error

	mu        sync.Mutex
	Published []model.Order
}

// Publish stores order unless Err is configured.
func (s *PublisherStub) Publish(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, order)
	return s.Err
}

// Count returns the number of published orders.
func (s *PublisherStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Published)
}

// ValidatorStub returns fixed messages.
type ValidatorStub struct {
	Messages []string
}

// Validate returns the configured messages.
func (s ValidatorStub) Validate(model.Order) []string {
	return s.Messages
}
