package dialect

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry errors.
var (
	// ErrUnknownDialect is returned by Resolve for names nobody registered.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrDuplicateDialect is returned when a name or alias is registered twice.
	ErrDuplicateDialect = errors.New("dialect already registered")
)

// snapshot is an immutable view of the registry. Readers load it without
// locking; Register publishes a modified copy.
type snapshot struct {
	byName map[string]*Dialect // canonical names and aliases, lower-case
	names  []string            // canonical names, sorted
}

var (
	registryMu sync.Mutex
	registry   atomic.Pointer[snapshot]
)

func current() *snapshot {
	if s := registry.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// Register adds a dialect under its name and aliases.
// Called by dialect implementations in their init() functions.
func Register(d *Dialect) error {
	if d == nil || d.Name == "" {
		return errors.New("dialect: name is required")
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	old := current()
	keys := append([]string{d.Name}, d.Aliases...)
	for _, k := range keys {
		if _, ok := old.byName[strings.ToLower(k)]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateDialect, k)
		}
	}

	next := &snapshot{
		byName: make(map[string]*Dialect, len(old.byName)+len(keys)),
		names:  append(slices.Clone(old.names), strings.ToLower(d.Name)),
	}
	maps.Copy(next.byName, old.byName)
	for _, k := range keys {
		next.byName[strings.ToLower(k)] = d
	}
	slices.Sort(next.names)
	registry.Store(next)
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(d *Dialect) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Get returns a dialect by name or alias.
func Get(name string) (*Dialect, bool) {
	d, ok := current().byName[strings.ToLower(name)]
	return d, ok
}

// Resolve returns a dialect by name or alias, failing with an error that
// wraps ErrUnknownDialect.
func Resolve(name string) (*Dialect, error) {
	if d, ok := Get(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownDialect, name, strings.Join(List(), ", "))
}

// List returns all registered dialect names (sorted). Aliases are omitted.
func List() []string {
	return slices.Clone(current().names)
}
