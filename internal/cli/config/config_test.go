package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.StringP("dialect", "d", "", "dialect")
	flags.StringP("output", "o", "", "output")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.Int("max-depth", 0, "max depth")
	flags.Int("max-input-bytes", 0, "max input bytes")
	return flags
}

// ---------- Load Tests ----------

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 4<<20, cfg.Limits.MaxInputBytes)
	assert.Equal(t, 512, cfg.Limits.MaxDepth)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
	assert.Equal(t, []string{".sql"}, cfg.Extensions)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `dialect: postgres
output: json
watch_debounce: 250ms
extensions: .sql,.ddl
limits:
  max_depth: 64
dialects:
  mysql:
    limits:
      max_depth: 32
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, []string{".sql", ".ddl"}, cfg.Extensions)
	assert.Equal(t, 64, cfg.Limits.MaxDepth)
	assert.Equal(t, 4<<20, cfg.Limits.MaxInputBytes, "unset keys keep defaults")
	assert.Equal(t, path, GetConfigFileUsed())

	assert.Equal(t, 32, cfg.LimitsFor("mysql").MaxDepth)
	assert.Equal(t, 32, cfg.LimitsFor("MariaDB").MaxDepth, "aliases share overrides")
	assert.Equal(t, 64, cfg.LimitsFor("postgresql").MaxDepth)
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlfront.yml"), []byte("dialect: ansi\n"), 0600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "sqlfront.yml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// ---------- Precedence Tests ----------

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "dialect: postgres\nlimits:\n  max_depth: 64\n")
	t.Setenv("SQLFRONT_DIALECT", "ansi")
	t.Setenv("SQLFRONT_LIMITS__MAX_DEPTH", "128")

	flags := testFlags()
	require.NoError(t, flags.Set("dialect", "mysql"))
	require.NoError(t, flags.Set("max-depth", "16"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect, "flag value should override config file and env var")
	assert.Equal(t, 16, cfg.Limits.MaxDepth)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "dialect: postgres\nlimits:\n  max_depth: 64\n")
	t.Setenv("SQLFRONT_DIALECT", "ansi")
	t.Setenv("SQLFRONT_LIMITS__MAX_DEPTH", "128")
	t.Setenv("SQLFRONT_WATCH_DEBOUNCE", "1s")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect, "env var should override config file")
	assert.Equal(t, 128, cfg.Limits.MaxDepth)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "dialect: postgres\n")
	t.Setenv("SQLFRONT_DIALECT", "ansi")

	// Defined but never set, so Changed is false.
	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect, "env var should be used when flag is not set")
}

// ---------- Validate Tests ----------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "alias dialect", mutate: func(c *Config) { c.Dialect = "pg" }},
		{name: "unknown dialect", mutate: func(c *Config) { c.Dialect = "oracle" }, errSubstr: "unknown dialect"},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "xml" }, errSubstr: "unknown mode"},
		{name: "zero depth", mutate: func(c *Config) { c.Limits.MaxDepth = 0 }, errSubstr: "max_depth must be positive"},
		{name: "negative input", mutate: func(c *Config) { c.Limits.MaxInputBytes = -1 }, errSubstr: "max_input_bytes must be positive"},
		{name: "negative concurrency", mutate: func(c *Config) { c.Concurrency = -2 }, errSubstr: "concurrency"},
		{
			name: "unknown dialect override",
			mutate: func(c *Config) {
				c.Dialects = map[string]DialectConfig{"sybase": {}}
			},
			errSubstr: "dialects.sybase",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_InvalidFileValue(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "dialect: oracle\n")
	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available:")
	assert.Nil(t, GetCurrentConfig())
}

// ---------- Context Tests ----------

func TestContextHelpers(t *testing.T) {
	ResetConfig()
	ctx := context.Background()

	assert.NotNil(t, GetLogger(ctx), "discard logger fallback")
	assert.Equal(t, DefaultDialect, FromContext(ctx).Dialect)

	cfg := Default()
	cfg.Dialect = "ansi"
	assert.Same(t, cfg, FromContext(NewContext(ctx, cfg)))

	logger := NewLogger(os.Stderr, true)
	assert.Same(t, logger, GetLogger(context.WithValue(ctx, LoggerKey(), logger)))
}
