// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/signup/internal/xdg"
)

// serviceName identifies this binary in logs.
const serviceName = "signup"

// NewRootCmd creates the root command for the signup CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Account signup service",
		Long: `signup validates registration requests, hashes passwords and
stores new accounts. It serves an HTTP API and can seed accounts from YAML.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return resolveConfigFile(&configFile)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/signup/config.yaml if present)")

	cmd.AddCommand(NewServeCmd(&configFile, nil))
	cmd.AddCommand(NewMigrateCmd(&configFile, nil))
	cmd.AddCommand(NewSeedCmd(&configFile, nil))

	return cmd
}

// resolveConfigFile falls back to the XDG config file when --config is unset.
func resolveConfigFile(configFile *string) error {
	if *configFile != "" {
		return nil
	}
	path, found, err := xdg.ConfigFile()
	if err != nil {
		slog.Warn("ignoring default config file", "error", err)
		return nil
	}
	if !found {
		return nil
	}
	*configFile = path
	return nil
}
