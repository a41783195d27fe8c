package handlers

import (
	"context"

	"github.com/polkiloo/restomart/internal/checkout"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, actor model.Principal, login, password string, role model.Role) (*model.User, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (model.Principal, error)
	Logout(userID int64)
}

// CatalogFacade exposes the orderable items.
type CatalogFacade interface {
	Catalog(ctx context.Context) (checkout.Catalog, error)
}

// CheckoutFacade edits and submits the operator's ordering session.
type CheckoutFacade interface {
	Checkout(ctx context.Context, userID int64) (*usecase.CheckoutView, error)
	SetQuantity(ctx context.Context, userID int64, itemID, input string) (*usecase.CheckoutView, error)
	RemoveItem(ctx context.Context, userID int64, itemID string) (*usecase.CheckoutView, error)
	CancelCheckout(userID int64) error
	UpdateSettlement(ctx context.Context, userID int64, update checkout.SettlementUpdate) (*usecase.CheckoutView, error)
	Submit(ctx context.Context, operator model.Principal, override bool) (*model.Order, error)
}

// DayOrdersFacade reads the day's orders.
type DayOrdersFacade interface {
	TodayOrders(ctx context.Context) feed.Snapshot
	RefreshFeed(ctx context.Context) feed.Snapshot
	DaySummary(ctx context.Context) (model.DaySummary, error)
	SubscribeFeed(fn func(feed.Snapshot)) (unsubscribe func())
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// RestoFacade aggregates the full set of operations used across handlers.
type RestoFacade interface {
	AuthFacade
	CatalogFacade
	CheckoutFacade
	DayOrdersFacade
	HealthFacade
}
