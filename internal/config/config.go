// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads service configuration from a YAML file and flags.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/holomush/signup/internal/account"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Default values for configuration keys.
const (
	DefaultHTTPAddr    = ":8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultLogLevel    = "info"
	DefaultStore       = StorePostgres
	DefaultEncoder     = account.AlgorithmArgon2id
)

// DatabaseURLEnv is read when database-url is not configured.
const DatabaseURLEnv = "DATABASE_URL"

// Config holds the service configuration.
type Config struct {
	HTTPAddr    string `koanf:"http-addr"`
	MetricsAddr string `koanf:"metrics-addr"`
	LogFormat   string `koanf:"log-format"`
	LogLevel    string `koanf:"log-level"`
	Store       string `koanf:"store"`
	DatabaseURL string `koanf:"database-url"`
	Encoder     string `koanf:"encoder"`
	BcryptCost  int    `koanf:"bcrypt-cost"`
	AutoMigrate bool   `koanf:"auto-migrate"`
}

// RegisterFlags adds one flag per configuration key to fs. Flag defaults are
// the configuration defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("http-addr", DefaultHTTPAddr, "signup API listen address")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("store", DefaultStore, "account store (postgres or memory)")
	fs.String("database-url", "", "PostgreSQL URL (default: $"+DatabaseURLEnv+")")
	fs.String("encoder", DefaultEncoder, "password encoder (argon2id or bcrypt)")
	fs.Int("bcrypt-cost", account.DefaultBcryptCost, "bcrypt work factor")
	fs.Bool("auto-migrate", false, "run pending migrations before serving")
}

// Load reads path (if non-empty) and overlays the flags in fs. Flags set on
// the command line win over the file; file values win over flag defaults.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}
	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("operation", "load flags").Wrap(err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("operation", "decode config").Wrap(err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv(DatabaseURLEnv)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	invalid := oops.Code("CONFIG_INVALID")

	if c.HTTPAddr == "" {
		return invalid.Errorf("http-addr is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return invalid.With("log-format", c.LogFormat).Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid.With("log-level", c.LogLevel).Errorf("log-level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return invalid.Errorf("database-url or %s is required for the postgres store", DatabaseURLEnv)
		}
	case StoreMemory:
		if c.AutoMigrate {
			return invalid.Errorf("auto-migrate requires the postgres store")
		}
	default:
		return invalid.With("store", c.Store).Errorf("store must be 'postgres' or 'memory', got %q", c.Store)
	}
	switch c.Encoder {
	case account.AlgorithmArgon2id:
	case account.AlgorithmBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			return invalid.With("bcrypt-cost", c.BcryptCost).
				Errorf("bcrypt-cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
		}
	default:
		return invalid.With("encoder", c.Encoder).Errorf("encoder must be 'argon2id' or 'bcrypt', got %q", c.Encoder)
	}
	return nil
}

// RequireDatabaseURL returns the database URL or a CONFIG_INVALID error.
func (c *Config) RequireDatabaseURL() (string, error) {
	if c.DatabaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").Errorf("database-url or %s is required", DatabaseURLEnv)
	}
	return c.DatabaseURL, nil
}
