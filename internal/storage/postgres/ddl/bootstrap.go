package ddl

import (
	"context"
	"fmt"
	"strings"

	gddl "salesmart/internal/ddl"
	"salesmart/internal/storage"
	"salesmart/pkg/records"
)

// Recreate drops and recreates t in schema, creating the schema first when
// one is given. It is the Postgres storage.DDLBootstrapper.
func Recreate(ctx context.Context, repo storage.Repository, schema string, t records.Table) error {
	def := gddl.FromTable(t, schema, MapType)
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}

	var stmts []string
	if s := strings.TrimSpace(schema); s != "" {
		stmts = append(stmts, BuildCreateSchemaSQL(s))
	}
	stmts = append(stmts, BuildDropTableSQL(def.FQN), create)
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return fmt.Errorf("apply DDL for %s: %w", def.FQN, err)
		}
	}
	return nil
}
