package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewRestoFacade,
		newHTTPServer,
		newFeedRefresher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	// Request contexts derive from baseCtx so long-lived SSE streams end when Shutdown starts.
	baseCtx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        p.Config.RunAddress,
		Handler:     p.Router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

type refresherParams struct {
	fx.In

	Dataset *feed.Dataset
	Broker  feed.Broker
	Config  *config.Config
	Logger  *slog.Logger
}

func newFeedRefresher(p refresherParams) *worker.FeedRefresher {
	return worker.NewFeedRefresher(p.Dataset, p.Broker, p.Config.FeedPollInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Refresher  *worker.FeedRefresher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting restomart",
				slog.String("addr", p.Server.Addr),
				slog.String("time_zone", p.Config.TimeZone),
			)
			p.Refresher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Refresher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("restomart stopped")
			return nil
		},
	})
}
