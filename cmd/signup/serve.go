// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/signup/internal/config"
	"github.com/holomush/signup/internal/observability"
	"github.com/holomush/signup/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd(configFile *string, deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the signup API",
		Long: `Serve POST /signup over HTTP, plus /metrics and health probes on
the metrics address. Shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cmd, cfg, deps)
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, deps *Deps) error {
	if err := cfg.Validate(); err != nil {
		return oops.With("operation", "validate configuration").Wrap(err)
	}
	deps = deps.withDefaults()
	logger := deps.setupLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting signup service",
		"http_addr", cfg.HTTPAddr,
		"store", cfg.Store,
		"encoder", cfg.Encoder,
	)

	be, err := deps.openBackend(ctx, cfg, logger)
	if err != nil {
		return oops.With("operation", "open account store").Wrap(err)
	}
	defer be.close()

	handler, err := buildHandler(cfg, be.store, logger)
	if err != nil {
		return oops.With("operation", "build signup handler").Wrap(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.MetricsAddr, be.ready)
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return oops.With("operation", "start observability server").Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
		metrics = obsServer.Metrics()
	}

	router := web.NewRouter(handler, web.WithMetrics(metrics), web.WithLogger(logger))
	apiServer := deps.WebServerFactory(cfg.HTTPAddr, router, logger)
	apiErrCh, err := apiServer.Start()
	if err != nil {
		stopServers(logger, obsServer)
		return oops.With("operation", "start signup server").Wrap(err)
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "signup")

	cmd.Println("Signup service started")
	if deps.OnStarted != nil {
		deps.OnStarted(apiServer.Addr())
	}

	<-ctx.Done()
	logger.Info("shutting down...")

	stopServers(logger, apiServer, obsServer)
	logger.Info("shutdown complete")
	return nil
}

type stopper interface {
	Stop(ctx context.Context) error
}

// stopServers stops each non-nil server in order within shutdownTimeout.
func stopServers(logger *slog.Logger, servers ...stopper) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if s == nil {
			continue
		}
		if err := s.Stop(ctx); err != nil {
			logger.Warn("error stopping server", "error", err)
		}
	}
}

// monitorServerErrors cancels ctx when a server reports an error.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
