package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/restomart/internal/checkout"
	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

// CatalogUseCase reads the sellable catalog.
type CatalogUseCase struct {
	items repository.CatalogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(items repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{items: items}
}

// Available returns every item currently on sale.
func (u *CatalogUseCase) Available(ctx context.Context) ([]model.CatalogItem, error) {
	items, err := u.items.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return items, nil
}

// Grouped returns the catalog split into menu and drinks.
func (u *CatalogUseCase) Grouped(ctx context.Context) (checkout.Catalog, error) {
	items, err := u.Available(ctx)
	if err != nil {
		return checkout.Catalog{}, err
	}
	return checkout.GroupCatalog(items), nil
}

// Import upserts catalog entries.
func (u *CatalogUseCase) Import(ctx context.Context, items []model.CatalogItem) error {
	for _, it := range items {
		if it.ID == "" || it.Name == "" {
			return fmt.Errorf("catalog item %q: id and name are required", it.ID)
		}
		if it.Price < 0 {
			return fmt.Errorf("catalog item %q: %w", it.ID, domainErrors.ErrInvalidAmount)
		}
		if it.Category != model.CategoryMenu && it.Category != model.CategoryBoisson {
			return fmt.Errorf("catalog item %q: unknown category %q", it.ID, it.Category)
		}
	}
	return u.items.Upsert(ctx, items)
}
