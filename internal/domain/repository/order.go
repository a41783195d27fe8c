package repository

import (
	"context"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error)
}

// OrderCodeRepository allocates per-key sequence numbers for order codes.
type OrderCodeRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
