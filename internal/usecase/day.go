package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

// DayOrdersUseCase answers questions about the orders of the current day.
type DayOrdersUseCase struct {
	orders repository.OrderRepository
	loc    *time.Location
	now    func() time.Time
}

// NewDayOrdersUseCase constructs DayOrdersUseCase.
func NewDayOrdersUseCase(orders repository.OrderRepository, loc *time.Location) *DayOrdersUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DayOrdersUseCase{orders: orders, loc: loc, now: time.Now}
}

// DayRange returns [start of day, start of next day) for now in loc.
func DayRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	t := now.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// Today lists today's orders, newest first.
func (u *DayOrdersUseCase) Today(ctx context.Context) ([]model.Order, error) {
	from, to := DayRange(u.now(), u.loc)
	orders, err := u.orders.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list today's orders: %w", err)
	}
	slices.SortStableFunc(orders, func(a, b model.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return orders, nil
}

// Summary aggregates today's orders.
func (u *DayOrdersUseCase) Summary(ctx context.Context) (model.DaySummary, error) {
	orders, err := u.Today(ctx)
	if err != nil {
		return model.DaySummary{}, err
	}
	return Summarize(orders), nil
}

// Summarize totals a list of orders.
func Summarize(orders []model.Order) model.DaySummary {
	sum := model.DaySummary{ByClassification: make(map[model.Classification]int)}
	for _, o := range orders {
		sum.Orders++
		sum.Revenue += o.Total
		sum.Cash += o.Payment.CashAmount
		sum.MobileMoney += o.Payment.MobileAmount
		sum.Owed += o.Payment.Owed
		if o.Fulfillment == model.FulfillmentToDeliver {
			sum.Deliveries++
		}
		sum.ByClassification[o.Classification]++
	}
	return sum
}
