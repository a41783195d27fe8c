package ordercode

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/domain/repository"
	"github.com/polkiloo/restomart/internal/usecase"
)

// Module exposes the order code generator to the fx graph.
var Module = fx.Provide(newGenerator)

type generatorParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Redis   *redis.Client `optional:"true"`
	Storage repository.Factory
}

// newGenerator prefers a remote service, then Redis, then the database counter.
func newGenerator(p generatorParams) (usecase.OrderCodeGenerator, error) {
	switch {
	case p.Config.OrderCodeService != "":
		return NewHTTPGenerator(p.Config.OrderCodeService, p.Logger)
	case p.Redis != nil:
		return NewCounterGenerator(NewRedisCounter(p.Redis)), nil
	default:
		return NewCounterGenerator(p.Storage.OrderCodes()), nil
	}
}
