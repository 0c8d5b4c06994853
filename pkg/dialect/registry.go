package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
	aliases    = make(map[string]string)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// ErrUnknownDialect is returned by Lookup for names no dialect registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Get returns a dialect by name or alias.
func Get(name string) (Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	key := strings.ToLower(name)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	d, ok := dialects[key]
	return d, ok
}

// Lookup is Get with an error naming the available dialects.
func Lookup(name string) (Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	d, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownDialect, name, strings.Join(List(), ", "))
	}
	return d, nil
}

// Register registers a dialect in the global registry.
// Called by dialect implementations in their init() functions.
func Register(d Dialect, alias ...string) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	name := strings.ToLower(d.Name())
	dialects[name] = d
	for _, a := range alias {
		aliases[strings.ToLower(a)] = name
	}
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AliasesOf returns the registered aliases of a dialect (sorted).
func AliasesOf(name string) []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	var out []string
	for a, canonical := range aliases {
		if canonical == strings.ToLower(name) {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

// MustGet returns a dialect by name or panics.
// Intended for tests and init-time wiring.
func MustGet(name string) Dialect {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}
