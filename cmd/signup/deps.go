// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/holomush/signup/internal/account"
	"github.com/holomush/signup/internal/account/postgres"
	"github.com/holomush/signup/internal/config"
	"github.com/holomush/signup/internal/logging"
	"github.com/holomush/signup/internal/observability"
	"github.com/holomush/signup/internal/signup"
	"github.com/holomush/signup/internal/store"
	"github.com/holomush/signup/internal/web"
)

// Deps contains injectable dependencies for the commands.
// All fields with nil values will use their default implementations.
type Deps struct {
	// PoolFactory opens a database pool.
	// Default: store.Connect
	PoolFactory func(ctx context.Context, url string) (Pool, error)

	// MigratorFactory creates a schema migrator.
	// Default: store.NewMigrator
	MigratorFactory func(url string) (Migrator, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// WebServerFactory creates the signup API server.
	// Default: web.NewServer
	WebServerFactory func(addr string, handler http.Handler, logger *slog.Logger) WebServer

	// LogWriter receives log output.
	// Default: os.Stderr
	LogWriter io.Writer

	// OnStarted is called with the API address once serve is accepting requests.
	OnStarted func(addr string)
}

// Pool wraps the methods used from *pgxpool.Pool.
type Pool interface {
	postgres.Pool
	Ping(ctx context.Context) error
	Close()
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Pending() ([]uint, error)
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// WebServer wraps the methods used from web.Server.
type WebServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.PoolFactory == nil {
		out.PoolFactory = func(ctx context.Context, url string) (Pool, error) {
			return store.Connect(ctx, url)
		}
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(url string) (Migrator, error) {
			return store.NewMigrator(url)
		}
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, ready)
		}
	}
	if out.WebServerFactory == nil {
		out.WebServerFactory = func(addr string, h http.Handler, logger *slog.Logger) WebServer {
			return web.NewServer(addr, h, logger)
		}
	}
	if out.LogWriter == nil {
		out.LogWriter = os.Stderr
	}
	return &out
}

// setupLogger installs the service logger as the slog default.
func (d *Deps) setupLogger(cfg *config.Config) *slog.Logger {
	logger := logging.Setup(serviceName, version, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel), d.LogWriter)
	slog.SetDefault(logger)
	return logger
}

// backend is the account store selected by configuration.
type backend struct {
	store account.Store
	ready observability.ReadinessChecker
	close func()
}

// openBackend opens the configured store, migrating first when asked to.
func (d *Deps) openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory account store; accounts are lost on exit")
		return &backend{
			store: account.NewMemoryStore(),
			ready: func() bool { return true },
			close: func() {},
		}, nil
	}

	url, err := cfg.RequireDatabaseURL()
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := d.migrate(url, false, logger); err != nil {
			return nil, err
		}
	}

	pool, err := d.PoolFactory(ctx, url)
	if err != nil {
		return nil, err
	}
	return &backend{
		store: postgres.NewAccountRepository(pool),
		ready: func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return pool.Ping(pingCtx) == nil
		},
		close: pool.Close,
	}, nil
}

// buildHandler wires encoder, store and validator into a signup handler.
func buildHandler(cfg *config.Config, st account.Store, logger *slog.Logger) (*signup.Handler, error) {
	encoder, err := account.NewEncoder(cfg.Encoder, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	svc, err := account.NewService(encoder, st, account.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return signup.NewHandler(account.NewEmailValidator(), svc, signup.WithLogger(logger))
}

// migrate applies (or with down, rolls back) all migrations.
func (d *Deps) migrate(url string, down bool, logger *slog.Logger) (err error) {
	m, err := d.MigratorFactory(url)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			logger.Warn("failed to close migrator", "error", closeErr)
		}
	}()

	if down {
		logger.Info("rolling back migrations")
		return m.Down()
	}

	pending, err := m.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		logger.Info("database schema is up to date")
		return nil
	}
	logger.Info("applying migrations", "pending", pending)
	return m.Up()
}
