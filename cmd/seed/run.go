package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/pkg/auth"
	"github.com/polkiloo/restomart/internal/seed"
	"github.com/polkiloo/restomart/internal/storage/postgres"
	"github.com/polkiloo/restomart/internal/usecase"
)

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	file, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return err
	}

	storage, err := postgres.New(ctx, cfg.DatabaseURI, log)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer storage.Close()

	catalog := usecase.NewCatalogUseCase(storage.Catalog())
	accounts := usecase.NewAuthUseCase(
		storage.Users(),
		auth.NewBcryptHasher(0),
		auth.NewJWTStrategy(cfg.JWTSecret, auth.Options{TTL: cfg.TokenTTL}),
	)

	return seed.Apply(ctx, file, catalog, accounts, log)
}
