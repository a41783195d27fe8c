package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CatalogRepositoryStub serves a fixed catalog.
type CatalogRepositoryStub struct {
	Items    []model.CatalogItem
	Err      error
	Upserted []model.CatalogItem

	mu        sync.Mutex
	listCalls int
}

// ListAvailable returns the available configured items.
func (s *CatalogRepositoryStub) ListAvailable(ctx context.Context) ([]model.CatalogItem, error) {
	s.mu.Lock()
	s.listCalls++
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.CatalogItem
	for _, it := range s.Items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out, nil
}

// ListCount returns how many times ListAvailable was called.
func (s *CatalogRepositoryStub) ListCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// Upsert records imported items.
func (s *CatalogRepositoryStub) Upsert(ctx context.Context, items []model.CatalogItem) error {
	if s.Err != nil {
		return s.Err
	}
	s.Upserted = append(s.Upserted, items...)
	return nil
}

// ListCall stores the bounds passed to ListCreatedBetween.
type ListCall struct {
	From time.Time
	To   time.Time
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, model.Order) error
	ListFn   func(context.Context, time.Time, time.Time) ([]model.Order, error)

	mu        sync.Mutex
	Created   []model.Order
	Orders    []model.Order
	ListCalls []ListCall
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) error {
	if s.CreateFn != nil {
		if err := s.CreateFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created = append(s.Created, order)
	return nil
}

// ListCreatedBetween returns orders from configured slice.
func (s *OrderRepositoryStub) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	s.mu.Lock()
	s.ListCalls = append(s.ListCalls, ListCall{From: from, To: to})
	orders := append([]model.Order(nil), s.Orders...)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, from, to)
	}
	return orders, nil
}

// ListCount returns how many times ListCreatedBetween was called.
func (s *OrderRepositoryStub) ListCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ListCalls)
}

// OrderCodeRepositoryStub hands out sequential numbers per key.
type OrderCodeRepositoryStub struct {
	Err      error
	mu       sync.Mutex
	counters map[string]int64
}

// Next increments the counter of key.
func (s *OrderCodeRepositoryStub) Next(ctx context.Context, key string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters == nil {
		s.counters = make(map[string]int64)
	}
	s.counters[key]++
	return s.counters[key], nil
}

// FactoryStub exposes repository stubs through repository.Factory.
type FactoryStub struct {
	UserRepo      repository.UserRepository
	CatalogRepo   repository.CatalogRepository
	OrderRepo     repository.OrderRepository
	OrderCodeRepo repository.OrderCodeRepository
}

func (f FactoryStub) Users() repository.UserRepository { return f.UserRepo }
func (f FactoryStub) Catalog() repository.CatalogRepository { return f.CatalogRepo }
func (f FactoryStub) Orders() repository.OrderRepository { return f.OrderRepo }
func (f FactoryStub) OrderCodes() repository.OrderCodeRepository { return f.OrderCodeRepo }
