package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restomart/internal/checkout"
	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewCatalogUseCase,
		NewCheckoutUseCase,
		checkout.NewRegistry,
		newOrderUseCase,
		newDayOrdersUseCase,
		fx.Annotate(NewRulesValidator, fx.As(new(OrderValidator))),
	),
)

type orderParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Catalog   *CatalogUseCase
	Sessions  *checkout.Registry
	Orders    repository.OrderRepository
	Codes     OrderCodeGenerator
	Validator OrderValidator
	Publisher OrderPublisher
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(
		p.Catalog,
		p.Sessions,
		p.Orders,
		p.Codes,
		p.Validator,
		p.Publisher,
		p.Logger,
		p.Config.Location,
		p.Config.SaveTimeout,
	)
}

func newDayOrdersUseCase(cfg *config.Config, orders repository.OrderRepository) *DayOrdersUseCase {
	return NewDayOrdersUseCase(orders, cfg.Location)
}
