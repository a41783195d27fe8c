package usecase

import (
	"context"

	"github.com/polkiloo/restomart/internal/checkout"
	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
)

// CheckoutView is the derived state of an operator's ordering session.
type CheckoutView struct {
	Lines           []model.LineItem
	Total           int64
	Draft           checkout.Draft
	Payment         model.PaymentRecord
	Warnings        []string
	ContactRequired bool
	CanSubmit       bool
}

// CheckoutUseCase edits ordering sessions against the live catalog.
type CheckoutUseCase struct {
	catalog  *CatalogUseCase
	sessions *checkout.Registry
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(catalog *CatalogUseCase, sessions *checkout.Registry) *CheckoutUseCase {
	return &CheckoutUseCase{catalog: catalog, sessions: sessions}
}

// View derives lines, total and payment preview for the operator's session.
func (u *CheckoutUseCase) View(ctx context.Context, userID int64) (*CheckoutView, error) {
	items, err := u.catalog.Available(ctx)
	if err != nil {
		return nil, err
	}
	sel, draft := u.sessions.Get(userID).Snapshot()
	return buildView(sel, draft, items), nil
}

func buildView(sel checkout.Selection, draft checkout.Draft, items []model.CatalogItem) *CheckoutView {
	lines, total := checkout.Derive(sel, items)
	return &CheckoutView{
		Lines:           lines,
		Total:           total,
		Draft:           draft,
		Payment:         draft.PaymentRecord(total),
		Warnings:        draft.Warnings(total),
		ContactRequired: draft.ContactRequired(total),
		CanSubmit:       total > 0,
	}
}

// SetQuantity parses the typed quantity and selects an available item.
func (u *CheckoutUseCase) SetQuantity(ctx context.Context, userID int64, itemID, input string) (*CheckoutView, error) {
	qty, err := checkout.ParseQuantity(input)
	if err != nil {
		return nil, err
	}
	items, err := u.catalog.Available(ctx)
	if err != nil {
		return nil, err
	}
	if !containsItem(items, itemID) {
		return nil, domainErrors.ErrNotFound
	}
	session := u.sessions.Get(userID)
	if err := session.SetQuantity(itemID, qty); err != nil {
		return nil, err
	}
	sel, draft := session.Snapshot()
	return buildView(sel, draft, items), nil
}

// RemoveItem unselects an item.
func (u *CheckoutUseCase) RemoveItem(ctx context.Context, userID int64, itemID string) (*CheckoutView, error) {
	if err := u.sessions.Get(userID).Remove(itemID); err != nil {
		return nil, err
	}
	return u.View(ctx, userID)
}

// Cancel clears the operator's selection and draft.
func (u *CheckoutUseCase) Cancel(userID int64) error {
	return u.sessions.Get(userID).Cancel()
}

// UpdateSettlement applies a partial settlement change.
func (u *CheckoutUseCase) UpdateSettlement(ctx context.Context, userID int64, update checkout.SettlementUpdate) (*CheckoutView, error) {
	items, err := u.catalog.Available(ctx)
	if err != nil {
		return nil, err
	}
	session := u.sessions.Get(userID)
	sel, _ := session.Snapshot()
	_, total := checkout.Derive(sel, items)
	if err := session.ApplySettlement(update, total); err != nil {
		return nil, err
	}
	sel, draft := session.Snapshot()
	return buildView(sel, draft, items), nil
}

// Forget drops the operator's session, e.g. on logout.
func (u *CheckoutUseCase) Forget(userID int64) {
	u.sessions.Drop(userID)
}

func containsItem(items []model.CatalogItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
