package storage

import (
	"context"
	"fmt"
	"sync"

	"salesmart/pkg/records"
)

// DDLBootstrapper is a backend-specific function that drops the table (if
// present) and creates it again from the table's typed columns, applying the
// DDL via repo.Exec. Backends register one per storage kind at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, schema string, t records.Table) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// RecreateTable locates the DDLBootstrapper for kind and invokes it.
func RecreateTable(ctx context.Context, kind string, repo Repository, schema string, t records.Table) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: no DDL bootstrapper for storage.kind=%q", ErrUnsupported, kind)
	}
	return fn(ctx, repo, schema, t)
}
