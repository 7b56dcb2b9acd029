// Package storage contains the storage-agnostic contracts for persisting mart
// tables: a backend registry, the Repository every backend implements, and the
// full-replace Loader built on top of them.
//
// Backends (postgres, mssql, sqlite) register a Factory and a DDLBootstrapper
// from their init functions; importing internal/storage/all enables them all.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnsupported is returned by New for a kind nobody registered.
var ErrUnsupported = errors.New("unsupported storage.kind")

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "postgres".
	Kind string
	// DSN is passed to the backend driver as is.
	DSN string
	// Schema qualifies every table name; empty uses the connection default.
	Schema string
}

// Repository is the minimal surface the loader needs from a backend.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to columns) into table, a possibly
	// schema-qualified name, and reports how many rows were written.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	// Exec runs one statement, typically DDL.
	Exec(ctx context.Context, sql string) error
	Close()
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w=%s", ErrUnsupported, cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
