// Package facadestub provides stubs of the HTTP facades. It lives apart from
// internal/test because it depends on usecase, whose tests import internal/test.
package facadestub

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/restomart/internal/checkout"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for account endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Principal, string, string, model.Role) (*model.User, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (model.Principal, error)
	LoggedOut      *[]int64
}

// Register delegates to the override or echoes the new account.
func (s AuthFacadeStub) Register(ctx context.Context, actor model.Principal, login, password string, role model.Role) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, actor, login, password, role)
	}
	return &model.User{ID: 2, Login: login, Role: role}, nil
}

// Authenticate returns a vendeur account and a fixed token by default.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleVendeur}, "token", nil
}

// ParseToken resolves every token to a vendeur unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Principal{UserID: 1, Login: "vendeur", Role: model.RoleVendeur}, nil
}

// Logout records the user id when LoggedOut is set.
func (s AuthFacadeStub) Logout(userID int64) {
	if s.LoggedOut != nil {
		*s.LoggedOut = append(*s.LoggedOut, userID)
	}
}

// CatalogFacadeStub returns a fixed catalog.
type CatalogFacadeStub struct {
	Items checkout.Catalog
	Err   error
}

// Catalog returns the configured catalog.
func (s CatalogFacadeStub) Catalog(context.Context) (checkout.Catalog, error) {
	return s.Items, s.Err
}

// CheckoutFacadeStub simulates the ordering session.
type CheckoutFacadeStub struct {
	ViewFn       func(context.Context, int64) (*usecase.CheckoutView, error)
	SetFn        func(context.Context, int64, string, string) (*usecase.CheckoutView, error)
	RemoveFn     func(context.Context, int64, string) (*usecase.CheckoutView, error)
	CancelFn     func(int64) error
	SettlementFn func(context.Context, int64, checkout.SettlementUpdate) (*usecase.CheckoutView, error)
	SubmitFn     func(context.Context, model.Principal, bool) (*model.Order, error)
}

func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64) (*usecase.CheckoutView, error) {
	if s.ViewFn != nil {
		return s.ViewFn(ctx, userID)
	}
	return &usecase.CheckoutView{Draft: checkout.NewDraft()}, nil
}

func (s CheckoutFacadeStub) SetQuantity(ctx context.Context, userID int64, itemID, input string) (*usecase.CheckoutView, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, userID, itemID, input)
	}
	return &usecase.CheckoutView{Draft: checkout.NewDraft()}, nil
}

func (s CheckoutFacadeStub) RemoveItem(ctx context.Context, userID int64, itemID string) (*usecase.CheckoutView, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return &usecase.CheckoutView{Draft: checkout.NewDraft()}, nil
}

func (s CheckoutFacadeStub) CancelCheckout(userID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(userID)
	}
	return nil
}

func (s CheckoutFacadeStub) UpdateSettlement(ctx context.Context, userID int64, update checkout.SettlementUpdate) (*usecase.CheckoutView, error) {
	if s.SettlementFn != nil {
		return s.SettlementFn(ctx, userID, update)
	}
	return &usecase.CheckoutView{Draft: checkout.NewDraft()}, nil
}

func (s CheckoutFacadeStub) Submit(ctx context.Context, operator model.Principal, override bool) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, operator, override)
	}
	return &model.Order{ID: "order-1", Code: "26XC0001", CreatedBy: operator.UserID, CreatedAt: time.Unix(0, 0)}, nil
}

// DayOrdersFacadeStub serves a fixed snapshot and lets tests push new ones.
type DayOrdersFacadeStub struct {
	Snapshot   feed.Snapshot
	Summary    model.DaySummary
	SummaryErr error
	// Reloaded replaces Snapshot on RefreshFeed when set.
	Reloaded *feed.Snapshot
	Refreshes int

	mu   sync.Mutex
	subs []func(feed.Snapshot)
}

func (s *DayOrdersFacadeStub) TodayOrders(context.Context) feed.Snapshot {
	return s.Snapshot
}

// RefreshFeed counts the call and pushes the reloaded snapshot to subscribers.
func (s *DayOrdersFacadeStub) RefreshFeed(context.Context) feed.Snapshot {
	s.mu.Lock()
	s.Refreshes++
	if s.Reloaded != nil {
		s.Snapshot = *s.Reloaded
	}
	snap := s.Snapshot
	s.mu.Unlock()
	s.Push(snap)
	return snap
}

func (s *DayOrdersFacadeStub) DaySummary(context.Context) (model.DaySummary, error) {
	return s.Summary, s.SummaryErr
}

// SubscribeFeed delivers the current snapshot right away, like the real dataset.
func (s *DayOrdersFacadeStub) SubscribeFeed(fn func(feed.Snapshot)) func() {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
	fn(s.Snapshot)
	return func() {}
}

// Push sends snap to every subscriber.
func (s *DayOrdersFacadeStub) Push(snap feed.Snapshot) {
	s.mu.Lock()
	subs := append([]func(feed.Snapshot){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// Subscribers returns how many streams subscribed so far.
func (s *DayOrdersFacadeStub) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// HealthFacadeStub returns Err from every check.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) HealthCheck(context.Context) error { return s.Err }

// RestoFacadeStub aggregates every facade stub.
type RestoFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CheckoutFacadeStub
	*DayOrdersFacadeStub
	HealthFacadeStub
}
