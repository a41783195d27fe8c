package checkout

import (
	"cmp"
	"slices"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
)

// Catalog is the ordering screen view of available items.
type Catalog struct {
	Menu    []model.CatalogItem
	Boisson []model.CatalogItem
}

// GroupCatalog splits available items by category, each group ordered by name then price.
func GroupCatalog(items []model.CatalogItem) Catalog {
	var c Catalog
	for _, it := range items {
		if !it.Available {
			continue
		}
		switch it.Category {
		case model.CategoryMenu:
			c.Menu = append(c.Menu, it)
		case model.CategoryBoisson:
			c.Boisson = append(c.Boisson, it)
		}
	}
	slices.SortStableFunc(c.Menu, compareItems)
	slices.SortStableFunc(c.Boisson, compareItems)
	return c
}

func compareItems(a, b model.CatalogItem) int {
	if n := cmp.Compare(a.Name, b.Name); n != 0 {
		return n
	}
	return cmp.Compare(a.Price, b.Price)
}

// QuantityPad accumulates a quantity one digit at a time.
type QuantityPad struct {
	digits []byte
}

// Press appends a digit. Anything else is rejected.
func (p *QuantityPad) Press(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if len(p.digits) == 0 && r == '0' {
		// leading zeros carry no value
		return true
	}
	if len(p.digits) >= 6 {
		return false
	}
	p.digits = append(p.digits, byte(r))
	return true
}

// Clear resets the pending entry to empty.
func (p *QuantityPad) Clear() {
	p.digits = p.digits[:0]
}

// Value returns the entered quantity; ok is false when nothing was entered.
func (p *QuantityPad) Value() (int, bool) {
	if len(p.digits) == 0 {
		return 0, false
	}
	n := 0
	for _, d := range p.digits {
		n = n*10 + int(d-'0')
	}
	return n, true
}

// CanConfirm reports whether the pending entry is a positive integer.
func (p *QuantityPad) CanConfirm() bool {
	n, ok := p.Value()
	return ok && n > 0
}

// ParseQuantity reads a quantity as typed on the pad, truncating at the first non-digit.
func ParseQuantity(input string) (int, error) {
	var pad QuantityPad
	for _, r := range input {
		if !pad.Press(r) {
			break
		}
	}
	if !pad.CanConfirm() {
		return 0, domainErrors.ErrInvalidQuantity
	}
	n, _ := pad.Value()
	return n, nil
}
