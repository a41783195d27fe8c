package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/checkout"
	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/server/http/dto"
	"github.com/polkiloo/restomart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/restomart/internal/test"
	"github.com/polkiloo/restomart/internal/test/facadestub"
	"github.com/polkiloo/restomart/internal/usecase"
)

var (
	admin   = model.Principal{UserID: 1, Login: "admin", Role: model.RoleAdmin}
	vendeur = model.Principal{UserID: 7, Login: "awa", Role: model.RoleVendeur}
	jsonCT  = map[string]string{"Content-Type": "application/json"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouted(t, method, path, path, handler, setup, body, headers)
}

func performRouted(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func as(p model.Principal) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, p)
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

func TestCurrentPrincipal(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentPrincipal(c); got != model.Guest {
		t.Fatalf("expected guest when not set, got %+v", got)
	}

	c.Set(middleware.PrincipalContextKey, vendeur)
	if got := CurrentPrincipal(c); got != vendeur {
		t.Fatalf("expected vendeur, got %+v", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Login: "moussa", Password: "pass", Role: "livreur"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(facadestub.AuthFacadeStub{}).Register, as(admin), body, jsonCT)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	user := decode[dto.UserResponse](t, resp)
	if user.Login != "moussa" || user.Role != "livreur" || len(user.Navigation) == 0 {
		t.Fatalf("unexpected user response %+v", user)
	}
}

func TestAuthHandlerRegisterPassesActorAndCredentials(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Login: login, Password: password, Role: "cuisinier"})
	handler := NewAuthHandler(facadestub.AuthFacadeStub{RegisterFn: func(_ context.Context, actor model.Principal, gotLogin, gotPassword string, role model.Role) (*model.User, error) {
		if actor != admin {
			t.Fatalf("unexpected actor %+v", actor)
		}
		if gotLogin != login || gotPassword != password || role != model.RoleCuisinier {
			t.Fatalf("unexpected credentials passed to facade: %q %q %q", gotLogin, gotPassword, role)
		}
		return &model.User{ID: 9, Login: login, Role: role}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, as(admin), body, jsonCT)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "" {
		t.Fatal("registering another operator must not log the admin out")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	failWith := func(err error) facadestub.AuthFacadeStub {
		return facadestub.AuthFacadeStub{RegisterFn: func(context.Context, model.Principal, string, string, model.Role) (*model.User, error) {
			return nil, err
		}}
	}
	tests := []struct {
		name   string
		facade facadestub.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":""}`), facade: failWith(domainErrors.ErrInvalidCredentials), status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b","role":"vendeur"}`), facade: failWith(domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "forbidden", body: []byte(`{"login":"a","password":"b","role":"vendeur"}`), facade: failWith(domainErrors.ErrForbidden), status: http.StatusForbidden},
		{name: "internal", body: []byte(`{"login":"a","password":"b","role":"vendeur"}`), facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, as(admin), tt.body, jsonCT)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "awa", Password: "pass"})
	handler := NewAuthHandler(facadestub.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return &model.User{ID: 7, Login: "awa", Role: model.RoleVendeur}, "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonCT)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "restomart_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named restomart_token")
	}

	user := decode[dto.UserResponse](t, resp)
	if user.ID != 7 || user.Role != "vendeur" || len(user.Navigation) == 0 {
		t.Fatalf("unexpected user response %+v", user)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	failWith := func(err error) facadestub.AuthFacadeStub {
		return facadestub.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", err
		}}
	}
	tests := []struct {
		name   string
		facade facadestub.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: failWith(domainErrors.ErrInvalidCredentials), status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonCT)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerNavigation(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/navigation", NewAuthHandler(facadestub.AuthFacadeStub{}).Navigation, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	user := decode[dto.UserResponse](t, resp)
	want := model.Navigation(model.RoleVendeur)
	if len(user.Navigation) != len(want) || user.Navigation[0].Path != want[0].Path {
		t.Fatalf("unexpected navigation %+v", user.Navigation)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	var loggedOut []int64
	handler := NewAuthHandler(facadestub.AuthFacadeStub{LoggedOut: &loggedOut})
	resp := performRequest(t, http.MethodPost, "/logout", handler.Logout, as(vendeur), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if len(loggedOut) != 1 || loggedOut[0] != vendeur.UserID {
		t.Fatalf("expected session of user 7 to be dropped, got %v", loggedOut)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	facade := facadestub.CatalogFacadeStub{Items: checkout.Catalog{
		Menu:    []model.CatalogItem{{ID: "box1", Name: "Box poulet", Price: 1500, Category: model.CategoryMenu}},
		Boisson: []model.CatalogItem{{ID: "jus", Name: "Jus de bissap", Price: 500, Category: model.CategoryBoisson}},
	}}
	resp := performRequest(t, http.MethodGet, "/catalog", NewCatalogHandler(facade).List, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	catalog := decode[dto.CatalogResponse](t, resp)
	if len(catalog.Menu) != 1 || catalog.Menu[0].Price != 1500 || len(catalog.Boisson) != 1 {
		t.Fatalf("unexpected catalog %+v", catalog)
	}

	resp = performRequest(t, http.MethodGet, "/catalog", NewCatalogHandler(facadestub.CatalogFacadeStub{Err: errors.New("down")}).List, as(vendeur), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func sampleView() *usecase.CheckoutView {
	draft := checkout.NewDraft()
	return &usecase.CheckoutView{
		Lines:     []model.LineItem{{ItemID: "box1", Name: "Box poulet", Quantity: 2, UnitPrice: 1500}},
		Total:     3000,
		Draft:     draft,
		Payment:   draft.PaymentRecord(3000),
		CanSubmit: true,
	}
}

func TestCheckoutHandlerView(t *testing.T) {
	facade := facadestub.CheckoutFacadeStub{ViewFn: func(_ context.Context, userID int64) (*usecase.CheckoutView, error) {
		if userID != vendeur.UserID {
			t.Fatalf("unexpected user %d", userID)
		}
		return sampleView(), nil
	}}
	resp := performRequest(t, http.MethodGet, "/checkout", NewCheckoutHandler(facade).View, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	view := decode[dto.CheckoutResponse](t, resp)
	if view.Total != 3000 || len(view.Lines) != 1 || view.Lines[0].Subtotal != 3000 || !view.CanSubmit {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Warnings == nil {
		t.Fatal("warnings must serialize as an empty list")
	}
	if view.Draft.PaymentMethod != "cash" || view.Draft.Fulfillment != "on-site" {
		t.Fatalf("unexpected draft %+v", view.Draft)
	}
	if view.Draft.CashOwed != 3000 || view.Payment.Settled {
		t.Fatalf("cash not yet received should be owed, got %+v / %+v", view.Draft, view.Payment)
	}
}

func TestCheckoutHandlerSetQuantity(t *testing.T) {
	var gotItem, gotInput string
	facade := facadestub.CheckoutFacadeStub{SetFn: func(_ context.Context, _ int64, itemID, input string) (*usecase.CheckoutView, error) {
		gotItem, gotInput = itemID, input
		return sampleView(), nil
	}}
	handler := NewCheckoutHandler(facade)

	resp := performRouted(t, http.MethodPut, "/checkout/items/:id", "/checkout/items/box1", handler.SetQuantity, as(vendeur), []byte(`{"quantity":"02"}`), jsonCT)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotItem != "box1" || gotInput != "02" {
		t.Fatalf("unexpected arguments %q %q", gotItem, gotInput)
	}

	resp = performRouted(t, http.MethodPut, "/checkout/items/:id", "/checkout/items/box1", handler.SetQuantity, as(vendeur), []byte("nope"), jsonCT)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCheckoutHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "invalid quantity", err: domainErrors.ErrInvalidQuantity, status: http.StatusUnprocessableEntity, body: domainErrors.ErrInvalidQuantity.Error()},
		{name: "unknown item", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "submit running", err: checkout.ErrSubmitInProgress, status: http.StatusConflict, body: checkout.ErrSubmitInProgress.Error()},
		{name: "bad settlement", err: domainErrors.ErrInvalidSettlement, status: http.StatusUnprocessableEntity},
		{name: "negative amount", err: domainErrors.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := facadestub.CheckoutFacadeStub{SetFn: func(context.Context, int64, string, string) (*usecase.CheckoutView, error) {
				return nil, tt.err
			}}
			resp := performRouted(t, http.MethodPut, "/checkout/items/:id", "/checkout/items/x", NewCheckoutHandler(facade).SetQuantity, as(vendeur), []byte(`{"quantity":"1"}`), jsonCT)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.body != "" {
				if got := decode[dto.ErrorResponse](t, resp); got.Error != tt.body {
					t.Fatalf("unexpected error body %q", got.Error)
				}
			}
		})
	}
}

func TestCheckoutHandlerRemoveItemAndCancel(t *testing.T) {
	var removed string
	var cancelled int64
	facade := facadestub.CheckoutFacadeStub{
		RemoveFn: func(_ context.Context, _ int64, itemID string) (*usecase.CheckoutView, error) {
			removed = itemID
			return sampleView(), nil
		},
		CancelFn: func(userID int64) error {
			cancelled = userID
			return nil
		},
	}
	handler := NewCheckoutHandler(facade)

	resp := performRouted(t, http.MethodDelete, "/checkout/items/:id", "/checkout/items/jus", handler.RemoveItem, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK || removed != "jus" {
		t.Fatalf("unexpected remove result: %d %q", resp.Code, removed)
	}

	resp = performRequest(t, http.MethodDelete, "/checkout", handler.Cancel, as(vendeur), nil, nil)
	if resp.Code != http.StatusNoContent || cancelled != vendeur.UserID {
		t.Fatalf("unexpected cancel result: %d %d", resp.Code, cancelled)
	}

	busy := NewCheckoutHandler(facadestub.CheckoutFacadeStub{CancelFn: func(int64) error { return checkout.ErrSubmitInProgress }})
	resp = performRequest(t, http.MethodDelete, "/checkout", busy.Cancel, as(vendeur), nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestCheckoutHandlerUpdateSettlement(t *testing.T) {
	var got checkout.SettlementUpdate
	facade := facadestub.CheckoutFacadeStub{SettlementFn: func(_ context.Context, _ int64, u checkout.SettlementUpdate) (*usecase.CheckoutView, error) {
		got = u
		return sampleView(), nil
	}}
	body := []byte(`{"client_name":"Awa","client_sex":"F","fulfillment":"to-deliver","payment_method":"mobile-money","mobile_received":3000}`)
	resp := performRequest(t, http.MethodPatch, "/settlement", NewCheckoutHandler(facade).UpdateSettlement, as(vendeur), body, jsonCT)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got.ClientName == nil || *got.ClientName != "Awa" {
		t.Fatalf("client name not forwarded: %+v", got)
	}
	if got.ClientSex == nil || *got.ClientSex != model.SexFemale {
		t.Fatalf("client sex not forwarded: %+v", got)
	}
	if got.Fulfillment == nil || *got.Fulfillment != model.FulfillmentToDeliver {
		t.Fatalf("fulfillment not forwarded: %+v", got)
	}
	if got.Method == nil || *got.Method != model.PaymentMobileMoney {
		t.Fatalf("method not forwarded: %+v", got)
	}
	if got.MobileReceived == nil || *got.MobileReceived != 3000 {
		t.Fatalf("mobile amount not forwarded: %+v", got)
	}
	if got.Classification != nil || got.CashReceived != nil || got.DeliveryAddress != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}

	resp = performRequest(t, http.MethodPatch, "/settlement", NewCheckoutHandler(facade).UpdateSettlement, as(vendeur), []byte("{"), jsonCT)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCheckoutHandlerSubmit(t *testing.T) {
	var gotOverride bool
	var gotOperator model.Principal
	facade := facadestub.CheckoutFacadeStub{SubmitFn: func(_ context.Context, operator model.Principal, override bool) (*model.Order, error) {
		gotOperator, gotOverride = operator, override
		return &model.Order{ID: "order-1", Code: "26FC0001", Total: 3000, CreatedBy: operator.UserID}, nil
	}}
	handler := NewCheckoutHandler(facade)

	resp := performRequest(t, http.MethodPost, "/submit", handler.Submit, as(vendeur), nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotOverride || gotOperator != vendeur {
		t.Fatalf("unexpected submit args %+v %v", gotOperator, gotOverride)
	}
	order := decode[dto.OrderResponse](t, resp)
	if order.Code != "26FC0001" || order.Total != 3000 {
		t.Fatalf("unexpected order %+v", order)
	}

	resp = performRequest(t, http.MethodPost, "/submit", handler.Submit, as(vendeur), []byte(`{"override":true}`), jsonCT)
	if resp.Code != http.StatusCreated || !gotOverride {
		t.Fatalf("expected override to be forwarded, status %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/submit", handler.Submit, as(vendeur), []byte(`{"override":`), jsonCT)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCheckoutHandlerSubmitFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty order", err: domainErrors.ErrEmptyOrder, status: http.StatusUnprocessableEntity},
		{name: "contact required", err: &domainErrors.ContactRequiredError{Message: "Nom et numéro obligatoires"}, status: http.StatusUnprocessableEntity},
		{name: "code generation", err: errors.Join(domainErrors.ErrCodeGeneration, errors.New("timeout")), status: http.StatusBadGateway},
		{name: "save failed", err: fmt.Errorf("%w: %w", domainErrors.ErrSaveFailed, errors.New("base hors ligne")), status: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := facadestub.CheckoutFacadeStub{SubmitFn: func(context.Context, model.Principal, bool) (*model.Order, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/submit", NewCheckoutHandler(facade).Submit, as(vendeur), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}

	messages := []string{"Adresse de livraison obligatoire", "Le total ne correspond pas aux articles"}
	facade := facadestub.CheckoutFacadeStub{SubmitFn: func(context.Context, model.Principal, bool) (*model.Order, error) {
		return nil, &domainErrors.ValidationError{Messages: messages}
	}}
	resp := performRequest(t, http.MethodPost, "/submit", NewCheckoutHandler(facade).Submit, as(vendeur), nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
	body := decode[dto.ValidationResponse](t, resp)
	if len(body.Errors) != 2 || body.Errors[0] != messages[0] {
		t.Fatalf("unexpected validation body %+v", body)
	}
}

func TestCheckoutHandlerSubmitShowsSaveFailure(t *testing.T) {
	facade := facadestub.CheckoutFacadeStub{SubmitFn: func(context.Context, model.Principal, bool) (*model.Order, error) {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrSaveFailed, errors.New("base hors ligne"))
	}}
	resp := performRequest(t, http.MethodPost, "/submit", NewCheckoutHandler(facade).Submit, as(vendeur), nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	body := decode[dto.ErrorResponse](t, resp)
	if body.Error != "enregistrement de la commande impossible: base hors ligne" {
		t.Fatalf("expected the save failure to reach the operator, got %q", body.Error)
	}
}

func sampleOrder() model.Order {
	return model.Order{
		ID:             "order-1",
		Code:           "26HC0001",
		Fulfillment:    model.FulfillmentOnSite,
		Classification: model.ClassificationForClient,
		Total:          1500,
		Lines:          []model.LineItem{{ItemID: "box1", Name: "Box poulet", Quantity: 1, UnitPrice: 1500}},
		Payment:        model.PaymentRecord{Settled: true, Type: model.PaymentCash, CashAmount: 1500},
		CreatedAt:      time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrdersHandlerToday(t *testing.T) {
	updated := time.Date(2026, 5, 4, 12, 5, 0, 0, time.UTC)
	facade := &facadestub.DayOrdersFacadeStub{Snapshot: feed.Snapshot{Orders: []model.Order{sampleOrder()}, UpdatedAt: updated}}
	resp := performRequest(t, http.MethodGet, "/today", NewOrdersHandler(facade).Today, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := decode[dto.FeedResponse](t, resp)
	if len(body.Orders) != 1 || body.Orders[0].Code != "26HC0001" || body.Loading || body.Error != "" {
		t.Fatalf("unexpected feed %+v", body)
	}
	if body.UpdatedAt == nil || !body.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected updated_at %v", body.UpdatedAt)
	}

	facade = &facadestub.DayOrdersFacadeStub{Snapshot: feed.Snapshot{Err: errors.New("db down")}}
	resp = performRequest(t, http.MethodGet, "/today", NewOrdersHandler(facade).Today, as(vendeur), nil, nil)
	body = decode[dto.FeedResponse](t, resp)
	if body.Error == "" || body.Orders == nil || body.UpdatedAt != nil {
		t.Fatalf("expected error state with empty list, got %+v", body)
	}
}

func TestOrdersHandlerRefresh(t *testing.T) {
	reloaded := feed.Snapshot{Orders: []model.Order{sampleOrder(), sampleOrder()}, UpdatedAt: time.Now()}
	facade := &facadestub.DayOrdersFacadeStub{Reloaded: &reloaded}
	resp := performRequest(t, http.MethodPost, "/refresh", NewOrdersHandler(facade).Refresh, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if facade.Refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", facade.Refreshes)
	}
	if body := decode[dto.FeedResponse](t, resp); len(body.Orders) != 2 {
		t.Fatalf("expected reloaded orders, got %+v", body)
	}

	failed := feed.Snapshot{Orders: []model.Order{sampleOrder()}, Err: errors.New("db down")}
	facade = &facadestub.DayOrdersFacadeStub{Reloaded: &failed}
	resp = performRequest(t, http.MethodPost, "/refresh", NewOrdersHandler(facade).Refresh, as(vendeur), nil, nil)
	body := decode[dto.FeedResponse](t, resp)
	if resp.Code != http.StatusOK || body.Error == "" || len(body.Orders) != 1 {
		t.Fatalf("expected previous orders with an error, got %d %+v", resp.Code, body)
	}
}

func TestOrdersHandlerSummary(t *testing.T) {
	facade := &facadestub.DayOrdersFacadeStub{Summary: model.DaySummary{
		Orders:           2,
		Revenue:          4000,
		Cash:             1500,
		MobileMoney:      2500,
		Deliveries:       1,
		ByClassification: map[model.Classification]int{model.ClassificationForClient: 2},
	}}
	resp := performRequest(t, http.MethodGet, "/summary", NewOrdersHandler(facade).Summary, as(vendeur), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := decode[dto.SummaryResponse](t, resp)
	if body.Revenue != 4000 || body.ByClassification["for-client"] != 2 {
		t.Fatalf("unexpected summary %+v", body)
	}

	facade = &facadestub.DayOrdersFacadeStub{SummaryErr: errors.New("down")}
	resp = performRequest(t, http.MethodGet, "/summary", NewOrdersHandler(facade).Summary, as(vendeur), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var sb strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read event: %v", err)
		}
		if line == "\n" {
			return sb.String()
		}
		sb.WriteString(line)
	}
}

func TestOrdersHandlerStream(t *testing.T) {
	facade := &facadestub.DayOrdersFacadeStub{Snapshot: feed.Snapshot{Loading: true}}
	router := gin.New()
	router.GET("/stream", NewOrdersHandler(facade).Stream)
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	first := readEvent(t, reader)
	if !strings.Contains(first, "event:orders") || !strings.Contains(first, `"loading":true`) {
		t.Fatalf("unexpected first event %q", first)
	}

	facade.Push(feed.Snapshot{Orders: []model.Order{sampleOrder()}, UpdatedAt: time.Now()})
	second := readEvent(t, reader)
	if !strings.Contains(second, "26HC0001") {
		t.Fatalf("expected pushed order in event, got %q", second)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(facadestub.HealthFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(facadestub.HealthFacadeStub{Err: errors.New("down")}).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
