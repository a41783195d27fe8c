package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/restomart/internal/adapter/ordercode"
	"github.com/polkiloo/restomart/internal/app"
	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/logger"
	"github.com/polkiloo/restomart/internal/migrate"
	"github.com/polkiloo/restomart/internal/pkg/auth"
	"github.com/polkiloo/restomart/internal/server/http/handlers"
	"github.com/polkiloo/restomart/internal/server/http/router"
	"github.com/polkiloo/restomart/internal/storage/postgres"
	"github.com/polkiloo/restomart/internal/storage/redisstore"
	"github.com/polkiloo/restomart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redisstore.Module,
		migrate.Module,
		feed.Module,
		ordercode.Module,
		usecase.Module,
		fx.Provide(
			func(b feed.Broker) usecase.OrderPublisher { return b },
			func(u *usecase.DayOrdersUseCase) feed.OrderSource { return u },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.RestoFacade) handlers.RestoFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
