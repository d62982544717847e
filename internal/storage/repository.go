// Package storage contains the storage-agnostic contract for persisting the
// canonical plant collection, plus the factory the command wiring selects a
// backend through.
//
// Backends register themselves from init (see the sqlite, postgres, and
// mssql subpackages and the blank-import package storage/all); the rest of
// the program depends only on Repository.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Config selects and configures a backend.
type Config struct {
	// Kind names a registered backend ("sqlite", "postgres", "mssql").
	Kind string

	// DSN is the backend-specific connection string.
	DSN string

	// Table is the destination table name; DefaultTable when empty.
	Table string
}

// DefaultTable is the canonical plants table name.
const DefaultTable = "powerplants"

// Repository is a write-only sink for canonical records. Writing is a
// distinct phase after all transformation completes; no reader runs
// concurrently with it.
type Repository interface {
	// EnsureTable creates the destination table when it does not exist.
	EnsureTable(ctx context.Context) error

	// CopyFrom bulk-inserts rows aligned to columns order and reports the
	// number of rows written.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Close releases the underlying connections.
	Close()
}

// Factory builds a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[strings.ToLower(kind)] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds report the registered
// alternatives.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[strings.ToLower(cfg.Kind)]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %s)",
			cfg.Kind, strings.Join(Kinds(), ", "))
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
