package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/logger"
	"github.com/polkiloo/restomart/internal/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel).With("component", "migrate")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Apply(ctx, cfg.DatabaseURI, log); err != nil {
		log.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	log.Info("migrations applied")
}
