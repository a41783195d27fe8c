package repository

import (
	"context"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// CatalogRepository reads and seeds sellable items.
type CatalogRepository interface {
	ListAvailable(ctx context.Context) ([]model.CatalogItem, error)
	Upsert(ctx context.Context, items []model.CatalogItem) error
}
