package ddl

import (
	"context"
	"fmt"

	gddl "salesmart/internal/ddl"
	"salesmart/internal/storage"
	"salesmart/pkg/records"
)

// Recreate drops and recreates t in schema. It is the SQL Server
// storage.DDLBootstrapper; the schema itself must already exist.
func Recreate(ctx context.Context, repo storage.Repository, schema string, t records.Table) error {
	def := gddl.FromTable(t, schema, MapType)
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	for _, s := range []string{BuildDropTableSQL(def.FQN), create} {
		if err := repo.Exec(ctx, s); err != nil {
			return fmt.Errorf("apply DDL for %s: %w", def.FQN, err)
		}
	}
	return nil
}
