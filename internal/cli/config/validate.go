package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"

	// Register dialects so names can be checked.
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "json", "yaml", "markdown"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := dialect.Resolve(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if !slices.Contains(OutputModes, strings.ToLower(c.Output)) {
		errs = append(errs, fmt.Errorf("output: unknown mode %q (available: %s)", c.Output, strings.Join(OutputModes, ", ")))
	}
	if err := c.Limits.validate("limits"); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce))
	}

	for _, name := range sortedKeys(c.Dialects) {
		if _, err := dialect.Resolve(name); err != nil {
			errs = append(errs, fmt.Errorf("dialects.%s: %w", name, err))
			continue
		}
		if lim := c.Dialects[name].Limits; lim != nil {
			if lim.MaxInputBytes < 0 || lim.MaxDepth < 0 {
				errs = append(errs, fmt.Errorf("dialects.%s.limits must not be negative", name))
			}
		}
	}

	return errors.Join(errs...)
}

func (l Limits) validate(prefix string) error {
	if l.MaxInputBytes <= 0 {
		return fmt.Errorf("%s.max_input_bytes must be positive, got %d", prefix, l.MaxInputBytes)
	}
	if l.MaxDepth <= 0 {
		return fmt.Errorf("%s.max_depth must be positive, got %d", prefix, l.MaxDepth)
	}
	return nil
}

func sortedKeys(m map[string]DialectConfig) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
