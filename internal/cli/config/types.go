// Package config provides configuration management for the sqlfront CLI.
//
// Values are layered with koanf: built-in defaults, then an optional
// sqlfront.yaml, then SQLFRONT_ environment variables, then flags that were
// set explicitly on the command line.
package config

import (
	"strings"
	"time"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// Default configuration values.
const (
	DefaultDialect       = "mysql"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultWatchDebounce = 100 * time.Millisecond
	DefaultHistoryFile   = ".sqlfront_history"
)

// Limits mirrors parser.Limits with config tags.
type Limits struct {
	MaxInputBytes int `koanf:"max_input_bytes"`
	MaxDepth      int `koanf:"max_depth"`
}

// Parser converts l to the limits the parser takes.
func (l Limits) Parser() parser.Limits {
	return parser.Limits{MaxInputBytes: l.MaxInputBytes, MaxDepth: l.MaxDepth}
}

// DialectConfig holds per-dialect overrides.
type DialectConfig struct {
	Limits *Limits `koanf:"limits"`
}

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string                   `koanf:"dialect"`
	Output        string                   `koanf:"output"`
	Verbose       bool                     `koanf:"verbose"`
	Limits        Limits                   `koanf:"limits"`
	Concurrency   int                      `koanf:"concurrency"`
	WatchDebounce time.Duration            `koanf:"watch_debounce"`
	HistoryFile   string                   `koanf:"history_file"`
	Extensions    []string                 `koanf:"extensions"`
	Dialects      map[string]DialectConfig `koanf:"dialects"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	lim := parser.DefaultLimits()
	return &Config{
		Dialect:       DefaultDialect,
		Output:        DefaultOutput,
		Limits:        Limits{MaxInputBytes: lim.MaxInputBytes, MaxDepth: lim.MaxDepth},
		WatchDebounce: DefaultWatchDebounce,
		HistoryFile:   DefaultHistoryFile,
		Extensions:    []string{".sql"},
	}
}

// LimitsFor returns the parser limits for a dialect. A per-dialect entry
// overrides the global limits field by field.
func (c *Config) LimitsFor(dialectName string) parser.Limits {
	lim := c.Limits
	if dc, ok := c.lookupDialect(dialectName); ok && dc.Limits != nil {
		if dc.Limits.MaxInputBytes > 0 {
			lim.MaxInputBytes = dc.Limits.MaxInputBytes
		}
		if dc.Limits.MaxDepth > 0 {
			lim.MaxDepth = dc.Limits.MaxDepth
		}
	}
	return lim.Parser()
}

// lookupDialect matches keys by name or alias, so a "postgres" entry applies
// to the postgresql dialect.
func (c *Config) lookupDialect(name string) (DialectConfig, bool) {
	want := canonicalName(name)
	for key, dc := range c.Dialects {
		if canonicalName(key) == want {
			return dc, true
		}
	}
	return DialectConfig{}, false
}

func canonicalName(name string) string {
	if d, ok := dialect.Get(name); ok {
		return d.GetName()
	}
	return strings.ToLower(name)
}
