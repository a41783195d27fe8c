package feed

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Module provides the live feed dataset and the order broker.
var Module = fx.Provide(
	NewDataset,
	newBroker,
)

type brokerParams struct {
	fx.In

	Redis  *redis.Client `optional:"true"`
	Logger *slog.Logger
}

func newBroker(p brokerParams) Broker {
	if p.Redis == nil {
		return NewMemoryBroker()
	}
	return NewRedisBroker(p.Redis, DefaultChannel, p.Logger)
}
