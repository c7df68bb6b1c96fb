// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/signup/internal/config"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(configFile *string, deps *Deps) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply all pending migrations to the accounts database.
With --down, roll back every migration instead (drops all accounts).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runMigrate(cmd, cfg, down, deps)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations")
	return cmd
}

func runMigrate(cmd *cobra.Command, cfg *config.Config, down bool, deps *Deps) error {
	url, err := cfg.RequireDatabaseURL()
	if err != nil {
		return err
	}
	deps = deps.withDefaults()
	logger := deps.setupLogger(cfg)

	cmd.Println("Running migrations...")
	if err := deps.migrate(url, down, logger); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
	}

	if down {
		cmd.Println("Migrations rolled back")
	} else {
		cmd.Println("Migrations completed successfully")
	}
	return nil
}
