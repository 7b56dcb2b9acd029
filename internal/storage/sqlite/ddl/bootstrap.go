package ddl

import (
	"context"
	"fmt"

	gddl "salesmart/internal/ddl"
	"salesmart/internal/storage"
	"salesmart/pkg/records"
)

// Recreate drops and recreates t. schema, when set, must name an attached
// database such as "main".
func Recreate(ctx context.Context, repo storage.Repository, schema string, t records.Table) error {
	def := gddl.FromTable(t, schema, MapType)
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, BuildDropTableSQL(def.FQN)); err != nil {
		return fmt.Errorf("drop %s: %w", def.FQN, err)
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", def.FQN, err)
	}
	return nil
}
