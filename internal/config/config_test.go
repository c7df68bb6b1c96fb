// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/signup/internal/config"
	"github.com/holomush/signup/pkg/errutil"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")

	cfg, err := config.Load("", newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, &config.Config{
		HTTPAddr:    ":8080",
		MetricsAddr: "127.0.0.1:9100",
		LogFormat:   "json",
		LogLevel:    "info",
		Store:       "postgres",
		Encoder:     "argon2id",
		BcryptCost:  12,
	}, cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	path := writeFile(t, `
http-addr: ":9090"
store: memory
encoder: bcrypt
bcrypt-cost: 10
log-format: text
`)

	cfg, err := config.Load(path, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "bcrypt", cfg.Encoder)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "http-addr: \":9090\"\nauto-migrate: false\n")

	cfg, err := config.Load(path, newFlags(t, "--http-addr", ":7070", "--auto-migrate"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoad_DatabaseURL(t *testing.T) {
	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv(config.DatabaseURLEnv, "postgres://env/db")

		cfg, err := config.Load("", newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv(config.DatabaseURLEnv, "postgres://env/db")

		cfg, err := config.Load("", newFlags(t, "--database-url", "postgres://flag/db"))
		require.NoError(t, err)
		assert.Equal(t, "postgres://flag/db", cfg.DatabaseURL)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), newFlags(t))
	errutil.AssertErrorCode(t, err, "CONFIG_LOAD_FAILED")
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := config.Load(writeFile(t, "http-addr: [unterminated"), newFlags(t))
	errutil.AssertErrorCode(t, err, "CONFIG_LOAD_FAILED")
}

func validConfig() config.Config {
	return config.Config{
		HTTPAddr:    ":8080",
		LogFormat:   "json",
		LogLevel:    "info",
		Store:       config.StorePostgres,
		DatabaseURL: "postgres://localhost/signup",
		Encoder:     "argon2id",
		BcryptCost:  12,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid postgres", func(*config.Config) {}, ""},
		{"valid memory", func(c *config.Config) { c.Store = config.StoreMemory; c.DatabaseURL = "" }, ""},
		{"valid bcrypt", func(c *config.Config) { c.Encoder = "bcrypt" }, ""},
		{"empty http addr", func(c *config.Config) { c.HTTPAddr = "" }, "http-addr"},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, "log-format"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "trace" }, "log-level"},
		{"bad store", func(c *config.Config) { c.Store = "sqlite" }, "store"},
		{"postgres without url", func(c *config.Config) { c.DatabaseURL = "" }, "database-url"},
		{"memory with auto-migrate", func(c *config.Config) { c.Store = config.StoreMemory; c.AutoMigrate = true }, "auto-migrate"},
		{"bad encoder", func(c *config.Config) { c.Encoder = "md5" }, "encoder"},
		{"bcrypt cost too low", func(c *config.Config) { c.Encoder = "bcrypt"; c.BcryptCost = 3 }, "bcrypt-cost"},
		{"bcrypt cost too high", func(c *config.Config) { c.Encoder = "bcrypt"; c.BcryptCost = 32 }, "bcrypt-cost"},
		{"cost ignored for argon2id", func(c *config.Config) { c.BcryptCost = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_RequireDatabaseURL(t *testing.T) {
	cfg := validConfig()
	url, err := cfg.RequireDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/signup", url)

	cfg.DatabaseURL = ""
	_, err = cfg.RequireDatabaseURL()
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}
