package checkout

import (
	"cmp"
	"slices"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// Selection maps catalog item ids to selected quantities.
type Selection map[string]int

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id, qty := range s {
		out[id] = qty
	}
	return out
}

// Derive resolves the selection against the catalog. Ids missing from the catalog are dropped.
func Derive(selection Selection, catalog []model.CatalogItem) ([]model.LineItem, int64) {
	byID := make(map[string]model.CatalogItem, len(catalog))
	for _, it := range catalog {
		byID[it.ID] = it
	}

	lines := make([]model.LineItem, 0, len(selection))
	var total int64
	for id, qty := range selection {
		if qty <= 0 {
			continue
		}
		item, ok := byID[id]
		if !ok {
			continue
		}
		line := model.LineItem{ItemID: id, Name: item.Name, Quantity: qty, UnitPrice: item.Price}
		lines = append(lines, line)
		total += line.Subtotal()
	}

	slices.SortFunc(lines, func(a, b model.LineItem) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	return lines, total
}
