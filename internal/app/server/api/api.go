// Package api assembles the HTTP surface of a running vault.
//
// POST   /api/v1/session                   # Authenticate (public)
// DELETE /api/v1/session                   # Deauthenticate (auth)
// GET    /api/v1/records                   # List record headers (auth)
// POST   /api/v1/records                   # Create record (auth)
// GET    /api/v1/records/{name}            # Record header (auth)
// DELETE /api/v1/records/{name}            # Delete record (auth)
// PUT    /api/v1/records/{name}/data/{key} # Set field (auth)
// GET    /api/v1/records/{name}/data/{key} # Read field (auth)
// POST   /api/v1/sync                      # Persist state (auth)
// POST   /api/v1/fetch                     # Reload cache (auth)
// GET    /api/v1/metadata                  # Vault snapshot (auth)
// /api/v1/meta/{domain}[/{key}]            # Metadata domains (auth)
package api

import (
	healthAPI "lockvault/internal/app/server/api/http/health"
	metaAPI "lockvault/internal/app/server/api/http/metadomain"
	"lockvault/internal/app/server/api/http/middleware"
	"lockvault/internal/app/server/api/http/middleware/auth"
	"lockvault/internal/app/server/api/http/middleware/logger"
	recordAPI "lockvault/internal/app/server/api/http/record"
	sessionAPI "lockvault/internal/app/server/api/http/session"
	syncAPI "lockvault/internal/app/server/api/http/sync"
	"lockvault/internal/app/server/guard"
	authboundary "lockvault/internal/auth"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health  *healthAPI.Handler
	Session *sessionAPI.Handler
	Record  *recordAPI.Handler
	Meta    *metaAPI.Handler
	Sync    *syncAPI.Handler
}

// New builds a *chi.Mux with all operations registered through huma.
func New(g *guard.Guard, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Lockvault API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(g, log)
	h.Health.SetupRoutes(API)
	h.Session.SetupRoutes(API)
	h.Record.SetupRoutes(API)
	h.Meta.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(g *guard.Guard, log *slog.Logger) *Handlers {
	authMW := auth.New(g, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	sessionHandler := sessionAPI.NewHandler(authboundary.NewRegistry(g), log, public, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	recordHandler := recordAPI.NewHandler(g, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	metaHandler := metaAPI.NewHandler(g, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(g, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Session: sessionHandler,
		Record:  recordHandler,
		Meta:    metaHandler,
		Sync:    syncHandler,
	}
}
