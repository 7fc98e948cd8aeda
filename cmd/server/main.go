package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"lockvault/internal/app/server/api"
	"lockvault/internal/app/server/guard"
	"lockvault/internal/config"
	"lockvault/internal/domain/vault"
	"lockvault/internal/infrastructure/backend"
	fileBackend "lockvault/internal/infrastructure/backend/file"
	memoryBackend "lockvault/internal/infrastructure/backend/memory"
	postgresBackend "lockvault/internal/infrastructure/backend/postgres"
	sqliteBackend "lockvault/internal/infrastructure/backend/sqlite"
	"lockvault/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	store, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}

	// Vault creation is the CLI's job; the server only serves an
	// existing vault.
	v, err := vault.Open(ctx, cfg.Vault.Name, cfg.Vault.Location, store)
	if err != nil {
		return fmt.Errorf("open vault: %w", err)
	}
	defer func() {
		if err := v.Close(ctx); err != nil {
			log.Error("close vault", slog.String("error", err.Error()))
		}
	}()

	mux := api.New(guard.New(v), log)

	log.Info("serving vault",
		slog.String("vault", cfg.Vault.Name),
		slog.String("backend", cfg.Vault.Backend),
		slog.String("address", cfg.Server.RunAddress),
	)
	return http.ListenAndServe(cfg.Server.RunAddress, mux)
}

func openBackend(ctx context.Context, cfg *config.Config) (backend.Backend, error) {
	switch cfg.Vault.Backend {
	case config.BackendFile:
		return fileBackend.New(cfg.Vault.Location, cfg.Vault.Name), nil
	case config.BackendMemory:
		return memoryBackend.New(), nil
	case config.BackendSQLite:
		return sqliteBackend.New(filepath.Join(cfg.Vault.Location, cfg.Vault.Name+".db"))
	case config.BackendPostgres:
		return postgresBackend.New(ctx, cfg.DB.DatabaseURI, cfg.DB.Migrations)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Vault.Backend)
	}
}
