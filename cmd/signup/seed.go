// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/signup/internal/config"
	"github.com/holomush/signup/internal/seed"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds flags for the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd(configFile *string, deps *Deps) *cobra.Command {
	sc := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Register accounts listed in a YAML file",
		Long: `Register every account in the seed file through the same validation
as the HTTP API. Prints one line per entry. Entries that fail do not stop the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runSeed(cmd, cfg, sc, deps)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&sc.file, "file", "", "seed file path (required)")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", defaultSeedTimeout, "timeout for the whole run (e.g., 30s, 1m)")
	return cmd
}

func runSeed(cmd *cobra.Command, cfg *config.Config, sc *seedConfig, deps *Deps) error {
	if sc.file == "" {
		return oops.Code("CONFIG_INVALID").Errorf("--file is required")
	}
	if err := cfg.Validate(); err != nil {
		return oops.With("operation", "validate configuration").Wrap(err)
	}

	f, err := seed.Load(sc.file)
	if err != nil {
		return err
	}

	deps = deps.withDefaults()
	logger := deps.setupLogger(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	be, err := deps.openBackend(ctx, cfg, logger)
	if err != nil {
		return oops.With("operation", "open account store").Wrap(err)
	}
	defer be.close()

	handler, err := buildHandler(cfg, be.store, logger)
	if err != nil {
		return oops.With("operation", "build signup handler").Wrap(err)
	}

	results, err := seed.Run(ctx, handler, f)
	for _, r := range results {
		if r.Created() {
			cmd.Printf("%d\t%s\t%d\tcreated %s\n", r.Index, r.Email, r.StatusCode, r.AccountID)
		} else {
			cmd.Printf("%d\t%s\t%d\t%s\n", r.Index, r.Email, r.StatusCode, r.Message)
		}
	}
	if err != nil {
		return err
	}

	created, rejected := seed.Summarize(results)
	cmd.Printf("Seeding complete: %d created, %d rejected\n", created, rejected)
	logger.Info("seeding complete", "created", created, "rejected", rejected, "file", sc.file)
	return nil
}
