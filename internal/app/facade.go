package app

import (
	"context"

	"github.com/polkiloo/restomart/internal/checkout"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RestoFacade is the single entry point the HTTP layer talks to.
type RestoFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	day      *usecase.DayOrdersUseCase
	dataset  *feed.Dataset
	health   HealthChecker
}

func NewRestoFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	checkoutUC *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	day *usecase.DayOrdersUseCase,
	dataset *feed.Dataset,
	health HealthChecker,
) *RestoFacade {
	return &RestoFacade{
		auth:     auth,
		catalog:  catalog,
		checkout: checkoutUC,
		orders:   orders,
		day:      day,
		dataset:  dataset,
		health:   health,
	}
}

func (f *RestoFacade) Register(ctx context.Context, actor model.Principal, login, password string, role model.Role) (*model.User, error) {
	return f.auth.Register(ctx, actor, login, password, role)
}

func (f *RestoFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *RestoFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

// Logout drops the operator's in-progress selection.
func (f *RestoFacade) Logout(userID int64) {
	f.checkout.Forget(userID)
}

func (f *RestoFacade) Catalog(ctx context.Context) (checkout.Catalog, error) {
	return f.catalog.Grouped(ctx)
}

func (f *RestoFacade) Checkout(ctx context.Context, userID int64) (*usecase.CheckoutView, error) {
	return f.checkout.View(ctx, userID)
}

func (f *RestoFacade) SetQuantity(ctx context.Context, userID int64, itemID, input string) (*usecase.CheckoutView, error) {
	return f.checkout.SetQuantity(ctx, userID, itemID, input)
}

func (f *RestoFacade) RemoveItem(ctx context.Context, userID int64, itemID string) (*usecase.CheckoutView, error) {
	return f.checkout.RemoveItem(ctx, userID, itemID)
}

func (f *RestoFacade) CancelCheckout(userID int64) error {
	return f.checkout.Cancel(userID)
}

func (f *RestoFacade) UpdateSettlement(ctx context.Context, userID int64, update checkout.SettlementUpdate) (*usecase.CheckoutView, error) {
	return f.checkout.UpdateSettlement(ctx, userID, update)
}

func (f *RestoFacade) Submit(ctx context.Context, operator model.Principal, override bool) (*model.Order, error) {
	return f.orders.Submit(ctx, operator, override)
}

// TodayOrders returns the live dataset, loading it first if nothing was fetched yet.
func (f *RestoFacade) TodayOrders(ctx context.Context) feed.Snapshot {
	snap := f.dataset.Snapshot()
	if snap.UpdatedAt.IsZero() && snap.Err == nil {
		_ = f.dataset.Refresh(ctx)
		snap = f.dataset.Snapshot()
	}
	return snap
}

// RefreshFeed reloads the day's orders on demand. Stream subscribers receive the result too.
func (f *RestoFacade) RefreshFeed(ctx context.Context) feed.Snapshot {
	_ = f.dataset.Refresh(ctx)
	return f.dataset.Snapshot()
}

func (f *RestoFacade) DaySummary(ctx context.Context) (model.DaySummary, error) {
	return f.day.Summary(ctx)
}

func (f *RestoFacade) SubscribeFeed(fn func(feed.Snapshot)) func() {
	return f.dataset.Subscribe(fn)
}

func (f *RestoFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
