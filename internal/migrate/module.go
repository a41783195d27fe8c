package migrate

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restomart/internal/config"
)

// Module applies migrations on start when AUTO_MIGRATE is enabled.
var Module = fx.Invoke(registerAutoMigrate)

// applyFunc is replaced in tests.
var applyFunc = Apply

func registerAutoMigrate(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) {
	if !cfg.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return applyFunc(ctx, cfg.DatabaseURI, logger)
		},
	})
}
